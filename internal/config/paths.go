package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // SQLite database
	Data     string // JSON collections for the file backend
	Logs     string // Rotating log files
	Backups  string // Default export location
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "trickplanner.db"),
		Data:     filepath.Join(cfg.BaseDir, "data"),
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
		Backups:  filepath.Join(cfg.BaseDir, "backups"),
	}
}

// DefaultBaseDir returns $XDG_DATA_HOME/trickplanner.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "trickplanner")
}
