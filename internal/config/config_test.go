package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.False(t, cfg.UniqueKeys)
	assert.Equal(t, DefaultPartialTTL, cfg.PartialTTL)

	max, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Zero(t, max)
}

func TestLoadFileYAML(t *testing.T) {
	path := writeConfig(t, `
listen_addr: 127.0.0.1:9000
upload_dir: /srv/uploads
max_file_size: 10 MB
allowed_extensions: [".png", "jpg"]
unique_keys: true
partial_ttl: 2h
sweep_interval: 5m
log_level: debug
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	assert.Equal(t, []string{".png", "jpg"}, cfg.AllowedExtensions)
	assert.True(t, cfg.UniqueKeys)
	assert.Equal(t, 2*time.Hour, cfg.PartialTTL)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)

	max, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), max)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "listen_addr: 127.0.0.1:9000\n")

	t.Setenv("LISTEN_ADDR", ":4000")
	t.Setenv("UPLOAD_DIR", "data")
	t.Setenv("MAX_FILE_SIZE", "1KiB")
	t.Setenv("ALLOWED_EXTENSIONS", "png, pdf ,")
	t.Setenv("UNIQUE_KEYS", "true")
	t.Setenv("SWEEP_INTERVAL", "0s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.ListenAddr)
	assert.Equal(t, "data", cfg.UploadDir)
	assert.Equal(t, []string{"png", "pdf"}, cfg.AllowedExtensions)
	assert.True(t, cfg.UniqueKeys)
	assert.Zero(t, cfg.SweepInterval)
	assert.Equal(t, "json", cfg.LogFormat)

	max, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1024), max)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad yaml", body: "listen_addr: [\n"},
		{name: "bad size", body: "max_file_size: lots\n"},
		{name: "negative ttl", body: "partial_ttl: -1h\n"},
		{name: "bad bool env", env: map[string]string{"UNIQUE_KEYS": "maybe"}},
		{name: "bad duration env", env: map[string]string{"PARTIAL_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesConfigPath(t *testing.T) {
	path := writeConfig(t, "upload_dir: from-config-path\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-config-path", cfg.UploadDir)
}
