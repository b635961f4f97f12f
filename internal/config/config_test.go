package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
log_directory: /var/log/tests
scan_interval_seconds: 0
blob:
  enabled: true
  connection_string: "UseDevelopmentStorage=true"
  container: runs
log:
  level: debug
  filename: logdash.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "/var/log/tests", cfg.LogDirectory)
	require.Equal(t, 60, cfg.ScanIntervalSeconds)
	require.True(t, cfg.Blob.Enabled)
	require.Equal(t, "runs", cfg.Blob.Container)
	require.Equal(t, 15, cfg.Blob.TimeoutSeconds)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "logdash.log", cfg.Log.Filename)
	require.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "addr: [unclosed"))
	require.Error(t, err)
}

func TestLoadBlobRequiresConnectionString(t *testing.T) {
	_, err := Load(writeConfig(t, "blob:\n  enabled: true\n"))
	require.ErrorContains(t, err, "connection_string")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOGDASH_LOG_DIRECTORY", "/srv/logs")
	t.Setenv("LOGDASH_BLOB_ENABLED", "true")
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/srv/logs", cfg.LogDirectory)
	require.True(t, cfg.Blob.Enabled)
	require.Equal(t, "UseDevelopmentStorage=true", cfg.Blob.ConnectionString)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvRejectsBadBool(t *testing.T) {
	t.Setenv("LOGDASH_BLOB_ENABLED", "maybe")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOGDASH_BLOB_CONTAINER=from-dotenv\n"), 0o644))
	t.Setenv("LOGDASH_BLOB_CONTAINER", "")
	require.NoError(t, os.Unsetenv("LOGDASH_BLOB_CONTAINER"))

	require.NoError(t, LoadEnvFile(path))
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Blob.Container)

	require.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
