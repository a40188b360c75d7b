package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WACLAW_WHATSAPP_ACCESS_TOKEN", "tok")
	t.Setenv("WACLAW_WHATSAPP_PHONE_NUMBER_ID", "555000")
	t.Setenv("WACLAW_WHATSAPP_VERIFY_TOKEN", "secret")
	t.Setenv("WACLAW_WHATSAPP_BOSS_PHONE", "19998887777")
	t.Setenv("WACLAW_PROVIDER_API_KEY", "sk-test")
	t.Setenv("WACLAW_AUDIT_ENABLED", "true")
	t.Setenv("WACLAW_AUDIT_BROKERS", "localhost:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.WhatsApp.AccessToken != "tok" {
		t.Errorf("access token: got %q", cfg.WhatsApp.AccessToken)
	}
	if cfg.WhatsApp.BossPhone != "19998887777" {
		t.Errorf("boss phone: got %q", cfg.WhatsApp.BossPhone)
	}
	if cfg.Provider.APIKey != "sk-test" {
		t.Errorf("api key: got %q", cfg.Provider.APIKey)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Brokers != "localhost:9092" {
		t.Errorf("audit config: %+v", cfg.Audit)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gateway.Listen != ":5000" {
		t.Errorf("listen default: got %q", cfg.Gateway.Listen)
	}
	if cfg.Gateway.RequestTimeout != 90*time.Second {
		t.Errorf("request timeout default: got %v", cfg.Gateway.RequestTimeout)
	}
	if cfg.Provider.APIBase != "https://api.groq.com/openai/v1" {
		t.Errorf("provider base default: got %q", cfg.Provider.APIBase)
	}
	if cfg.Provider.MaxToolIterations != 8 {
		t.Errorf("max iterations default: got %d", cfg.Provider.MaxToolIterations)
	}
	if cfg.Audit.Topic != "waclaw.audit" {
		t.Errorf("audit topic default: got %q", cfg.Audit.Topic)
	}
	if cfg.Timeline.Path == "" {
		t.Error("timeline path should default under the home dir")
	}
}

func TestRequestTimeoutOverride(t *testing.T) {
	t.Setenv("WACLAW_GATEWAY_REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Gateway.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout override: got %v", cfg.Gateway.RequestTimeout)
	}
}
