package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-provided setting. Parsing happens once
// at startup; a missing required variable aborts boot before any network
// listener is opened.
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	// AppOrigin is the trusted public origin of the application
	// (e.g. https://app.clinicafisio.com.br). Every redirect target is
	// built from this value, never from request headers.
	AppOrigin string `env:"APP_ORIGIN,required"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`

	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	OIDCIssuer      string `env:"OIDC_ISSUER"`
	OIDCClientID    string `env:"OIDC_CLIENT_ID"`
	OIDCRedirectURL string `env:"OIDC_REDIRECT_URL"`

	DefaultProvider string `env:"AUTH_DEFAULT_PROVIDER" envDefault:"google"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment into a Config and validates the
// values that every component depends on.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if !strings.HasPrefix(c.AppOrigin, "http://") && !strings.HasPrefix(c.AppOrigin, "https://") {
		return fmt.Errorf("APP_ORIGIN must be an absolute http(s) origin, got %q", c.AppOrigin)
	}
	if strings.HasSuffix(c.AppOrigin, "/") {
		return fmt.Errorf("APP_ORIGIN must not end with a slash, got %q", c.AppOrigin)
	}
	return nil
}

// GoogleEnabled reports whether the Google provider is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

// OIDCEnabled reports whether the generic OIDC provider is configured.
func (c Config) OIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCRedirectURL != ""
}
