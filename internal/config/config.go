// Package config loads configuration from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/storage"
)

// Config holds settings shared by the API server and the CLI.
type Config struct {
	// Server
	ListenAddr  string
	CORSOrigins []string

	// Logging
	LogLevel  string
	LogFormat string

	// Analysis
	AnalysisConfigPath string
	MaxSnapshotBytes   int64

	// Input and output
	SnapshotInput string
	OutputDir     string
	DuckDBPath    string

	// Storage backend ("local" or "s3", default: "local")
	StorageBackend string
	S3Endpoint     string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Region       string
	S3UseSSL       bool
}

// Load reads a .env file when present, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		ListenAddr:         envOr("LISTEN_ADDR", ":8080"),
		CORSOrigins:        envList("CORS_ORIGINS", []string{"*"}),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "json"),
		AnalysisConfigPath: envOr("ANALYSIS_CONFIG", ""),
		MaxSnapshotBytes:   envInt64("MAX_SNAPSHOT_BYTES", 256<<20),
		SnapshotInput:      envOr("SNAPSHOT_INPUT", "drive_files.json"),
		OutputDir:          envOr("OUTPUT_DIR", "drive_analysis"),
		DuckDBPath:         envOr("DUCKDB_PATH", ""),
		StorageBackend:     envOr("STORAGE_BACKEND", storage.BackendLocal),
		S3Endpoint:         envOr("S3_ENDPOINT", "localhost:9000"),
		S3Bucket:           envOr("S3_BUCKET", "drivescope"),
		S3AccessKey:        envOr("S3_ACCESS_KEY", ""),
		S3SecretKey:        envOr("S3_SECRET_KEY", ""),
		S3Region:           envOr("S3_REGION", "us-east-1"),
		S3UseSSL:           envBool("S3_USE_SSL", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ListenAddr, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("json", "console")),
		validation.Field(&c.MaxSnapshotBytes, validation.Min(int64(1))),
		validation.Field(&c.StorageBackend, validation.In(storage.BackendLocal, storage.BackendS3)),
		validation.Field(&c.S3AccessKey, validation.When(c.StorageBackend == storage.BackendS3, validation.Required)),
		validation.Field(&c.S3SecretKey, validation.When(c.StorageBackend == storage.BackendS3, validation.Required)),
	)
}

func (c *Config) S3() storage.S3Config {
	return storage.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Bucket:    c.S3Bucket,
		UseSSL:    c.S3UseSSL,
	}
}

// Store opens the configured report destination. Local runs write under
// OutputDir.
func (c *Config) Store() (storage.Store, error) {
	return storage.Open(c.StorageBackend, c.OutputDir, c.S3())
}

// Analysis returns the analysis settings, read from AnalysisConfigPath when
// set.
func (c *Config) Analysis() (analysis.Config, error) {
	if c.AnalysisConfigPath == "" {
		return analysis.DefaultConfig(), nil
	}
	return analysis.LoadConfigFile(c.AnalysisConfigPath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
