package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/schooltrack/go-console-auth/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080", cfg.API.BaseURL)
	require.Equal(t, "info", cfg.Log.Level)

	timeout, err := cfg.GetAPITimeout()
	require.NoError(t, err)
	require.Equal(t, 20*time.Second, timeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.district.example
  timeout: 5s
session:
  redis_addr: 127.0.0.1:6379
log:
  level: debug
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://api.district.example", cfg.API.BaseURL)
	require.Equal(t, "127.0.0.1:6379", cfg.Session.RedisAddr)
	require.Equal(t, "debug", cfg.Log.Level)

	timeout, err := cfg.GetAPITimeout()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, timeout)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example\n"), 0o600))

	t.Setenv("SCHOOLTRACK_API_URL", "https://env.example")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example", cfg.API.BaseURL)
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: soon\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
