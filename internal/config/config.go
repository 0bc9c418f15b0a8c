// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TRICKPLANNER_"

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all TrickPlanner data
	BaseDir string `env:"HOME"`

	Storage   StorageConfig
	Server    ServerConfig
	Sync      SyncConfig
	Telemetry TelemetryConfig
}

// StorageConfig selects where the planner collections live.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "file"
	Backend string `env:"STORAGE"`
}

// ServerConfig holds sync server settings.
type ServerConfig struct {
	URL               string        `env:"SERVER_URL"`
	Timeout           time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND"`
}

// SyncConfig holds sync scheduler timings.
type SyncConfig struct {
	Debounce     time.Duration `env:"SYNC_DEBOUNCE"`
	Poll         time.Duration `env:"SYNC_POLL"`
	ErrorDelay   time.Duration `env:"SYNC_ERROR_DELAY"`
	PullInterval time.Duration `env:"PULL_INTERVAL"`
}

// TelemetryConfig controls anonymous usage events. Off unless enabled.
type TelemetryConfig struct {
	Enabled bool `env:"TELEMETRY_ENABLED"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
		Storage: StorageConfig{
			Backend: StorageSQLite,
		},
		Server: ServerConfig{
			URL:               "http://localhost:8000",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		Sync: SyncConfig{
			Debounce:     800 * time.Millisecond,
			Poll:         200 * time.Millisecond,
			ErrorDelay:   1500 * time.Millisecond,
			PullInterval: 5 * time.Minute,
		},
	}
}

// Load reads configuration from environment variables over the defaults
// and ensures the data directories exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, StorageSQLite, StorageFile)
	}
	if c.BaseDir == "" {
		return fmt.Errorf("base directory is empty")
	}
	if c.Server.URL == "" {
		return fmt.Errorf("server url is empty")
	}
	if c.Sync.PullInterval <= 0 {
		return fmt.Errorf("pull interval must be positive, got %s", c.Sync.PullInterval)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	dirs := []string{
		cfg.BaseDir,
		paths.Logs,
		paths.Backups,
	}
	if cfg.Storage.Backend == StorageFile {
		dirs = append(dirs, paths.Data)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
