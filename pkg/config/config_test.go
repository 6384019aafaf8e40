package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "API_PREFIX", "JWT_EXPIRATION", "SMTP_HOST", "SMTP_USER"} {
		t.Setenv(key, "")
	}
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.SMTP.Configured())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/site?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, "mailer@example.com", cfg.SMTP.From)
	assert.Equal(t, "postgres://u:p@db:5432/site?sslmode=disable", cfg.Database.URL)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("nonsense", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
