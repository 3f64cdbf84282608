package config

import "os"

// Environment variable names. Each overrides the corresponding file value
// when set.
const (
	EnvConfigFile    = "IRCHOOK_CONFIG_FILE"
	EnvServer        = "IRCHOOK_SERVER"
	EnvNick          = "IRCHOOK_NICK"
	EnvPassword      = "IRCHOOK_PASSWORD"
	EnvSearchPattern = "IRCHOOK_SEARCH_PATTERN"
	EnvWebhookURL    = "IRCHOOK_WEBHOOK_URL"
	EnvWebhookAPIKey = "IRCHOOK_WEBHOOK_API_KEY"
	EnvLogLevel      = "IRCHOOK_LOG_LEVEL"
)

// ApplyEnv overlays environment variables onto the config. Only variables
// present in the environment are applied; empty values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvServer); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv(EnvNick); v != "" {
		cfg.Nick = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvSearchPattern); v != "" {
		cfg.SearchPattern = v
	}
	if v := os.Getenv(EnvWebhookURL); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv(EnvWebhookAPIKey); v != "" {
		cfg.WebhookAPIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
