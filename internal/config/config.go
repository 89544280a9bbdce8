package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DevSecretKeyBase is the fallback signing key. It is only suitable for
// local development; production deployments must set SECRET_KEY_BASE.
const DevSecretKeyBase = "dev-secret-key-base-0000000000000000000000000000000000000000"

type Config struct {
	Port          string `envconfig:"PORT" default:"8000"`
	SecretKeyBase string `envconfig:"SECRET_KEY_BASE"`
	BaseURL       string `envconfig:"BASE_URL"`

	GithubClientID     string `envconfig:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `envconfig:"GITHUB_CLIENT_SECRET"`

	MicrosoftClientID     string `envconfig:"MICROSOFT_CLIENT_ID"`
	MicrosoftClientSecret string `envconfig:"MICROSOFT_CLIENT_SECRET"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.SecretKeyBase == "" {
		cfg.SecretKeyBase = DevSecretKeyBase
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	return cfg, nil
}

// CallbackURL computes the redirect URL registered with a provider,
// e.g. http://localhost:8000/auth/github/callback.
func (c Config) CallbackURL(provider string) string {
	return c.BaseURL + "/auth/" + provider + "/callback"
}

// GithubEnabled reports whether a complete GitHub credential pair is set.
func (c Config) GithubEnabled() bool {
	return c.GithubClientID != "" && c.GithubClientSecret != ""
}

// MicrosoftEnabled reports whether a complete Microsoft credential pair is set.
func (c Config) MicrosoftEnabled() bool {
	return c.MicrosoftClientID != "" && c.MicrosoftClientSecret != ""
}
