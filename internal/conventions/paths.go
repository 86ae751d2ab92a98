package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default boostly data directory name (relative to home).
	DefaultDataDir = ".boostly"

	// SessionsDBFile is the filename of the wizard sessions database.
	SessionsDBFile = "sessions.db"
	// ConfigFile is the filename of the client configuration file.
	ConfigFile = "config.yaml"
)

// SessionsDBPath returns the path to the wizard sessions database.
func SessionsDBPath(dataDir string) string {
	return filepath.Join(dataDir, SessionsDBFile)
}

// ConfigPath returns the path to the client configuration file.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFile)
}
