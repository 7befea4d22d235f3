package config

import (
	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Env          string `env:"ENVIRONMENT"`
	DatabasePath string `env:"TRACKER_DB"`
	BaselinesDir string `env:"BASELINES_DIR" envDefault:"baselines"`
	URLsConfig   string `env:"URLS_CONFIG" envDefault:"urls.yaml"`

	Mailgun struct {
		Domain string `env:"MAILGUN_DOMAIN"`
		// DefaultAPIKey is preferred over APIKey when a tracked item carries
		// no credential of its own.
		DefaultAPIKey string `env:"DEFAULT_MAILGUN_API_KEY"`
		APIKey        string `env:"MAILGUN_API_KEY"`
		SenderFrom    string `env:"FROM_EMAIL" envDefault:"alerts@pagewatch.local"`
		TimeoutSecs   int    `env:"MAILGUN_TIMEOUT_SECS" envDefault:"10"`
	}

	log *zap.Logger
}

func NewConfig(lc fx.Lifecycle, log *zap.Logger) *Config {
	cfg := &Config{log: log}
	if err := env.Parse(cfg); err != nil {
		cfg.log.Sugar().Warnf("failed to parse environment: %v", err)
	}
	return cfg
}

// NotifierKey resolves the Mailgun API key for one tracked item: the item's
// own credential, else the deployment default, else the global key. Empty
// means notifications are skipped.
func (cfg *Config) NotifierKey(itemCredential string) string {
	if itemCredential != "" {
		return itemCredential
	}
	if cfg.Mailgun.DefaultAPIKey != "" {
		return cfg.Mailgun.DefaultAPIKey
	}
	return cfg.Mailgun.APIKey
}
