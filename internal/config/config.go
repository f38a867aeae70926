package config

import (
	"os"
	"path/filepath"
)

// Config is the environment-driven application configuration
type Config struct {
	LogPath string
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		LogPath: logPath(),
	}
}

// logPath returns the log file location: TEAMSYNC_LOG if set, otherwise
// the XDG state directory with a home-directory fallback
func logPath() string {
	if p := os.Getenv("TEAMSYNC_LOG"); p != "" {
		return p
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateDir = filepath.Join(home, ".local", "state")
	}

	return filepath.Join(stateDir, "teamsync", "teamsync.log")
}
