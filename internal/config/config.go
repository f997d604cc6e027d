// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the REST backend base URL including the /api prefix (e.g. http://localhost:8080/api).
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// IDPURL is the identity provider base URL (e.g. http://localhost:8081).
	IDPURL string `mapstructure:"IDP_URL"`
	// IDPRealm is the identity provider realm name.
	IDPRealm string `mapstructure:"IDP_REALM"`
	// IDPClientID is the OIDC client id registered for this console.
	IDPClientID string `mapstructure:"IDP_CLIENT_ID"`
	// HTTPTimeout bounds each backend request (e.g. "30s").
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// TokenCachePath is where the session artifact is cached for silent recovery.
	// Defaults to <user cache dir>/academic-records-console/session.json.
	TokenCachePath string `mapstructure:"TOKEN_CACHE_PATH"`
	// OTLPEndpoint enables telemetry export when set (e.g. http://localhost:4317).
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("IDP_URL", "http://localhost:8081")
	v.SetDefault("IDP_REALM", "academico")
	v.SetDefault("IDP_CLIENT_ID", "academico-console")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("TOKEN_CACHE_PATH", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: API_BASE_URL must be set")
	}
	if cfg.IDPURL == "" {
		return nil, errors.New("config: IDP_URL must be set")
	}
	if cfg.IDPRealm == "" {
		return nil, errors.New("config: IDP_REALM must be set")
	}
	if cfg.IDPClientID == "" {
		return nil, errors.New("config: IDP_CLIENT_ID must be set")
	}

	if cfg.TokenCachePath == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = "."
		}
		cfg.TokenCachePath = filepath.Join(dir, "academic-records-console", "session.json")
	}

	return &cfg, nil
}

// Timeout parses HTTPTimeout as a time.Duration. Returns 30s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
