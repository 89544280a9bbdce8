package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SECRET_KEY_BASE", "BASE_URL",
		"GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET",
		"MICROSOFT_CLIENT_ID", "MICROSOFT_CLIENT_SECRET",
		"REDIS_ADDR", "REDIS_PASSWORD",
	} {
		// t.Setenv registers the restore; the unset makes the
		// variable truly absent so defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DevSecretKeyBase, cfg.SecretKeyBase)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
}

func TestLoadCustomPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://localhost:4000", cfg.BaseURL)
}

func TestCallbackURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		"http://localhost:8000/auth/github/callback",
		cfg.CallbackURL("github"),
	)
	assert.Equal(t,
		"http://localhost:8000/auth/microsoft/callback",
		cfg.CallbackURL("microsoft"),
	)
}

func TestCallbackURLRespectsBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "https://login.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		"https://login.example.com/auth/github/callback",
		cfg.CallbackURL("github"),
	)
}

func TestProviderEnabledRequiresFullPair(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_CLIENT_ID", "id-only")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.GithubEnabled())
	assert.False(t, cfg.MicrosoftEnabled())

	t.Setenv("GITHUB_CLIENT_SECRET", "secret")

	cfg, err = Load()
	require.NoError(t, err)

	assert.True(t, cfg.GithubEnabled())
	assert.False(t, cfg.MicrosoftEnabled())
}
