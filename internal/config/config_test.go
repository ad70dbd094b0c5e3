package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "ANALYSIS_CONFIG",
		"MAX_SNAPSHOT_BYTES", "SNAPSHOT_INPUT", "OUTPUT_DIR", "DUCKDB_PATH",
		"STORAGE_BACKEND", "S3_ENDPOINT", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_REGION", "S3_USE_SSL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "drive_files.json", cfg.SnapshotInput)
	assert.Equal(t, "drive_analysis", cfg.OutputDir)
	assert.Equal(t, int64(256<<20), cfg.MaxSnapshotBytes)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.False(t, cfg.S3UseSSL)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_SNAPSHOT_BYTES", "not-a-number")
	t.Setenv("S3_USE_SSL", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(256<<20), cfg.MaxSnapshotBytes, "bad numbers fall back")
	assert.True(t, cfg.S3UseSSL)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OUTPUT_DIR=/tmp/reports\nLOG_FORMAT=console\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestValidate(t *testing.T) {
	t.Run("unknown log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("s3 backend needs credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_BACKEND", "s3")
		_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		assert.Error(t, err)

		t.Setenv("S3_ACCESS_KEY", "key")
		t.Setenv("S3_SECRET_KEY", "secret")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.Equal(t, "drivescope", cfg.S3().Bucket)
	})
}

func TestAnalysis(t *testing.T) {
	cfg := &Config{}
	a, err := cfg.Analysis()
	require.NoError(t, err)
	assert.Equal(t, 365, a.OldFileDays)

	path := filepath.Join(t.TempDir(), "analysis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old_file_days: 30\n"), 0o644))
	cfg.AnalysisConfigPath = path
	a, err = cfg.Analysis()
	require.NoError(t, err)
	assert.Equal(t, 30, a.OldFileDays)
}

func TestStore(t *testing.T) {
	cfg := &Config{StorageBackend: "local", OutputDir: t.TempDir()}
	store, err := cfg.Store()
	require.NoError(t, err)
	assert.NotNil(t, store)
}
