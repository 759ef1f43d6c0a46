package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "STORAGE_DRIVER", "DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"DB_MAX_IDLE_TIME", "DB_QUERY_TIMEOUT", "LIMITER_RPS", "LIMITER_BURST", "LIMITER_ENABLED",
		"CORS_TRUSTED_ORIGINS", "METRICS_ENABLED", "BASIC_AUTH_USERNAME", "BASIC_AUTH_PASSWORD",
		"LOG_LEVEL", "BIBLIOTECA_CONFIG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{"-storage", "memory"})
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout())
	assert.Equal(t, jsonlog.LevelInfo, cfg.LogLevel())
	assert.True(t, cfg.Limiter.Enabled)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "biblioteca.yaml")
	yml := `
server:
  port: 5000
  env: staging
database:
  dsn: postgres://file@localhost/libros
  query_timeout: 1s
cors:
  trusted_origins: ["https://a.example"]
log:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("PORT", "6000")
	t.Setenv("LIMITER_ENABLED", "false")

	cfg, err := Load([]string{"-config", path, "-env", "production"})
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "production", cfg.Server.Env, "flag overrides file")
	assert.Equal(t, "postgres://file@localhost/libros", cfg.Database.DSN)
	assert.Equal(t, time.Second, cfg.QueryTimeout())
	assert.Equal(t, []string{"https://a.example"}, cfg.Cors.TrustedOrigins)
	assert.Equal(t, jsonlog.LevelError, cfg.LogLevel())
	assert.False(t, cfg.Limiter.Enabled)
}

func TestLoad_ConfigFromEnvironment(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "biblioteca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o600))
	t.Setenv("BIBLIOTECA_CONFIG", path)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "postgres without dsn", args: nil},
		{name: "bad port", args: []string{"-storage", "memory", "-port", "70000"}},
		{name: "bad env", args: []string{"-storage", "memory", "-env", "qa"}},
		{name: "bad driver", args: []string{"-storage", "mongo"}},
		{name: "bad idle time", args: []string{"-storage", "memory", "-db-max-idle-time", "soon"}},
		{name: "bad log level", args: []string{"-storage", "memory", "-log-level", "loud"}},
		{name: "bad limiter", args: []string{"-storage", "memory", "-limiter-burst", "0"}},
		{name: "unparsable env", args: []string{"-storage", "memory"}, env: map[string]string{"PORT": "abc"}},
		{name: "unparsable env bool", args: []string{"-storage", "memory"}, env: map[string]string{"LIMITER_ENABLED": "sometimes"}},
		{name: "missing config file", args: []string{"-storage", "memory", "-config", "/nonexistent/biblioteca.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("BIBLIOTECA_CONFIG", "/etc/biblioteca.yaml")

	assert.Equal(t, "a.yaml", configPath([]string{"-config", "a.yaml"}))
	assert.Equal(t, "b.yaml", configPath([]string{"--config=b.yaml"}))
	assert.Equal(t, "/etc/biblioteca.yaml", configPath([]string{"-port", "80"}))
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("LIMITER_RPS", "2.5")
	t.Setenv("CORS_TRUSTED_ORIGINS", "https://a.example https://b.example")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Equal(t, 25, cfg.Database.MaxIdleConns, "unset variables keep defaults")
	assert.Equal(t, 2.5, cfg.Limiter.RPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Cors.TrustedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileFalseSurvivesDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "biblioteca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: memory\nlimiter:\n  enabled: false\n"), 0o600))

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)
	assert.False(t, cfg.Limiter.Enabled)
	assert.Equal(t, 8, cfg.Limiter.Burst)
}
