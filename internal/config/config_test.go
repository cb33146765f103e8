package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_TTL", "OPENROUTER_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100*time.Second, cfg.OpenRouterTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ALLOW_REGISTRATION", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AllowRegistration)
}

func TestValidate(t *testing.T) {
	err := AppConfig{JWTSecret: "s"}.Validate()
	assert.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "DB_URL")

	err = AppConfig{DBURL: "sqlite://:memory:"}.Validate()
	assert.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	assert.NoError(t, AppConfig{DBURL: "sqlite://:memory:", JWTSecret: "s"}.Validate())
}

func TestLoadOpenRouter_ReadsFreshValues(t *testing.T) {
	t.Setenv("OPENROUTER_API_URL", "https://openrouter.example/v1/chat/completions")
	t.Setenv("OPENROUTER_API_KEY", "key-1")
	t.Setenv("OPENROUTER_MODEL", "model-a")

	first, err := LoadOpenRouter()
	require.NoError(t, err)
	assert.Equal(t, "key-1", first.APIKey)
	assert.True(t, first.Complete())

	t.Setenv("OPENROUTER_API_KEY", "key-2")
	second, err := LoadOpenRouter()
	require.NoError(t, err)
	assert.Equal(t, "key-2", second.APIKey)
}

func TestOpenRouter_Complete(t *testing.T) {
	assert.False(t, OpenRouter{APIURL: "u", Model: "m"}.Complete())
	assert.False(t, OpenRouter{APIURL: "u", APIKey: "  ", Model: "m"}.Complete())
	assert.True(t, OpenRouter{APIURL: "u", APIKey: "k", Model: "m"}.Complete())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("NW_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NW_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("NW_DOTENV_PROBE"))
}
