package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "krowno.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 6, cfg.Compression.Level)
	assert.Equal(t, 6, cfg.Compression.MaxAttempts)
	assert.Equal(t, 4, cfg.Compression.InitialMultiplier)
	assert.Equal(t, 2, cfg.Compression.GrowthFactor)
	assert.True(t, cfg.Checksum.Enable)
	assert.Equal(t, "sha256", cfg.Checksum.Algorithm)
	assert.Equal(t, 5, cfg.HTTP.MaxRedirects)
	assert.Equal(t, "/bin/sh", cfg.Command.Shell)
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
storage_path: /tmp/krowno-test
compression:
  level: 9
  max_attempts: 6
  initial_multiplier: 4
  growth_factor: 2
http:
  timeout_seconds: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/krowno-test", cfg.StoragePath)
	assert.Equal(t, 9, cfg.Compression.Level)
	assert.Equal(t, 5, cfg.HTTP.TimeoutSeconds)
	// Untouched sections keep their defaults.
	assert.Equal(t, "/bin/sh", cfg.Command.Shell)
	assert.True(t, cfg.Checksum.Enable)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty storage path", "storage_path: \"\""},
		{"level too high", "compression:\n  level: 10"},
		{"zero attempts", "compression:\n  max_attempts: 0"},
		{"zero timeout", "http:\n  timeout_seconds: 0"},
		{"empty shell", "command:\n  shell: \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.contents))
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestBackupOptions_Mapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StoragePath = "/srv/archives"
	cfg.HTTP.UserAgent = "krowno-test"

	opts := cfg.BackupOptions()
	assert.Equal(t, "/srv/archives", opts.StorageDirectory)
	assert.Equal(t, 6, opts.CompressionOptions.DefaultLevel)
	assert.Equal(t, "krowno-test", opts.TransportOptions.UserAgent)
	assert.True(t, opts.ChecksumOptions.Enable)
}

func TestHashOptions_Mapping(t *testing.T) {
	opts := DefaultConfig().HashOptions()
	assert.EqualValues(t, 3, opts.Iterations)
	assert.EqualValues(t, 64*1024, opts.MemoryKiB)
	assert.EqualValues(t, 32, opts.KeyLength)
}
