package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vestibule-demo/internal/auth/provider"
	"vestibule-demo/internal/config"
)

func baseConfig() config.Config {
	return config.Config{
		Port:          "8000",
		SecretKeyBase: config.DevSecretKeyBase,
		BaseURL:       "http://localhost:8000",
	}
}

func TestBuildRegistryNoProviders(t *testing.T) {
	_, err := buildRegistry(context.Background(), baseConfig())
	assert.ErrorIs(t, err, provider.ErrNoProviders)
}

func TestBuildRegistrySkipsPartialPair(t *testing.T) {
	cfg := baseConfig()
	cfg.GithubClientID = "gh-id" // secret missing
	cfg.MicrosoftClientID = "ms-id"
	cfg.MicrosoftClientSecret = "ms-secret"

	registry, err := buildRegistry(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"microsoft"}, registry.Names())
}

func TestBuildRegistryGithubOnly(t *testing.T) {
	cfg := baseConfig()
	cfg.GithubClientID = "gh-id"
	cfg.GithubClientSecret = "gh-secret"

	registry, err := buildRegistry(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"github"}, registry.Names())
}

func TestBuildRegistryBothProviders(t *testing.T) {
	cfg := baseConfig()
	cfg.GithubClientID = "gh-id"
	cfg.GithubClientSecret = "gh-secret"
	cfg.MicrosoftClientID = "ms-id"
	cfg.MicrosoftClientSecret = "ms-secret"

	registry, err := buildRegistry(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"github", "microsoft"}, registry.Names())
}
