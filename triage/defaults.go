// Package triage holds application-wide constants shared by the
// symptom-intake pipeline and its supporting packages.
package triage

import (
	"os"
	"path/filepath"
)

const (
	// DefaultAppName is used for config lookup paths and data directories.
	DefaultAppName = "symptom-triage"

	// DefaultDatabaseType selects the embedded libsql driver.
	DefaultDatabaseType = "libsql"
)

// DefaultConfigPath is the fallback directory searched for config.yaml.
var DefaultConfigPath = filepath.Join(userHome(), ".config", DefaultAppName)

// DefaultDataDir is where the embedded database files live.
var DefaultDataDir = filepath.Join(userHome(), ".local", "share", DefaultAppName)

// DefaultDatabaseDSN points at the embedded episode database.
var DefaultDatabaseDSN = filepath.Join(DefaultDataDir, "episodes.db")

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
