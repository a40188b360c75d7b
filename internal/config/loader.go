package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultListen         = ":5000"
	defaultRequestTimeout = 90 * time.Second
	defaultModel          = "openai/gpt-oss-120b"
	defaultProviderBase   = "https://api.groq.com/openai/v1"
	defaultAuditTopic     = "waclaw.audit"
	defaultMaxIterations  = 8
)

// Load builds the configuration: defaults, then the optional JSON file at
// ~/.waclaw/config.json, then environment variables (env wins).
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path, err := configFilePath(); err == nil {
		applyFile(cfg, path)
	}

	if err := envconfig.Process("WACLAW_WHATSAPP", &cfg.WhatsApp); err != nil {
		return nil, err
	}
	if err := envconfig.Process("WACLAW_PROVIDER", &cfg.Provider); err != nil {
		return nil, err
	}
	if err := envconfig.Process("WACLAW_GATEWAY", &cfg.Gateway); err != nil {
		return nil, err
	}
	if err := envconfig.Process("WACLAW_TIMELINE", &cfg.Timeline); err != nil {
		return nil, err
	}
	if err := envconfig.Process("WACLAW_AUDIT", &cfg.Audit); err != nil {
		return nil, err
	}
	if err := envconfig.Process("WACLAW_SLACK", &cfg.Slack); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			APIBase:           defaultProviderBase,
			Model:             defaultModel,
			MaxToolIterations: defaultMaxIterations,
		},
		Gateway: GatewayConfig{
			Listen:         defaultListen,
			RequestTimeout: defaultRequestTimeout,
		},
		Audit: AuditConfig{
			Topic: defaultAuditTopic,
		},
	}
}

// applyDefaults restores defaults wiped by an explicit empty value in the
// config file.
func applyDefaults(cfg *Config) {
	if cfg.Provider.APIBase == "" {
		cfg.Provider.APIBase = defaultProviderBase
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = defaultModel
	}
	if cfg.Provider.MaxToolIterations <= 0 {
		cfg.Provider.MaxToolIterations = defaultMaxIterations
	}
	if cfg.Gateway.Listen == "" {
		cfg.Gateway.Listen = defaultListen
	}
	if cfg.Gateway.RequestTimeout <= 0 {
		cfg.Gateway.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Audit.Topic == "" {
		cfg.Audit.Topic = defaultAuditTopic
	}
	if cfg.Timeline.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Timeline.Path = filepath.Join(home, ".waclaw", "timeline.db")
		}
	}
}

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".waclaw", "config.json"), nil
}

// applyFile overlays values from a JSON config file. Missing or malformed
// files are ignored; env vars still apply on top.
func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, cfg)
}
