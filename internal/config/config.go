// Package config provides configuration types and loading for waclaw.
package config

import "time"

// Config is the root configuration struct.
// Top-level groups: WhatsApp, Provider, Gateway, Timeline, Audit, Slack.
type Config struct {
	WhatsApp WhatsAppConfig `json:"whatsapp"`
	Provider ProviderConfig `json:"provider"`
	Gateway  GatewayConfig  `json:"gateway"`
	Timeline TimelineConfig `json:"timeline"`
	Audit    AuditConfig    `json:"audit"`
	Slack    SlackConfig    `json:"slack"`
}

// WhatsAppConfig configures the WhatsApp Business Cloud API channel.
type WhatsAppConfig struct {
	AccessToken   string `json:"accessToken" envconfig:"ACCESS_TOKEN"`
	PhoneNumberID string `json:"phoneNumberId" envconfig:"PHONE_NUMBER_ID"`
	VerifyToken   string `json:"verifyToken" envconfig:"VERIFY_TOKEN"`
	BossPhone     string `json:"bossPhone" envconfig:"BOSS_PHONE"`
	APIBase       string `json:"apiBase,omitempty" envconfig:"API_BASE"`
}

// ProviderConfig contains settings for the LLM provider.
type ProviderConfig struct {
	APIKey            string `json:"apiKey" envconfig:"API_KEY"`
	APIBase           string `json:"apiBase,omitempty" envconfig:"API_BASE"`
	Model             string `json:"model" envconfig:"MODEL"`
	MaxToolIterations int    `json:"maxToolIterations" envconfig:"MAX_TOOL_ITERATIONS"`
}

// GatewayConfig groups the webhook server settings.
type GatewayConfig struct {
	Listen         string        `json:"listen" envconfig:"LISTEN"`
	RequestTimeout time.Duration `json:"requestTimeout" envconfig:"REQUEST_TIMEOUT"`
}

// TimelineConfig configures the local task log.
type TimelineConfig struct {
	Path string `json:"path" envconfig:"PATH"`
}

// AuditConfig configures the Kafka audit trail.
type AuditConfig struct {
	Enabled bool   `json:"enabled" envconfig:"ENABLED"`
	Brokers string `json:"brokers" envconfig:"BROKERS"`
	Topic   string `json:"topic" envconfig:"TOPIC"`
}

// SlackConfig configures the optional escalation mirror.
type SlackConfig struct {
	Enabled  bool   `json:"enabled" envconfig:"ENABLED"`
	BotToken string `json:"botToken" envconfig:"BOT_TOKEN"`
	Channel  string `json:"channel" envconfig:"CHANNEL"`
}
