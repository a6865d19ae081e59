package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths contains the standard paths for rpgbot data.
type Paths struct {
	Config string // ~/.config/rpgbot
	State  string // ~/.local/state/rpgbot
}

// GetPaths returns the standard paths for rpgbot data.
func GetPaths() *Paths {
	return &Paths{
		Config: filepath.Join(getEnvOrDefault("XDG_CONFIG_HOME", defaultConfigHome()), "rpgbot"),
		State:  filepath.Join(getEnvOrDefault("XDG_STATE_HOME", defaultStateHome()), "rpgbot"),
	}
}

// EnsurePaths creates the log directory. The config directory is created
// on demand by Save.
func (p *Paths) EnsurePaths() error {
	return os.MkdirAll(p.LogPath(), 0755)
}

// LogPath returns the directory for log files.
func (p *Paths) LogPath() string {
	return filepath.Join(p.State, "log")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultConfigHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func defaultStateHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GetConfigDir(), "rpgbot.json")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath(directory string) string {
	return filepath.Join(directory, ".rpgbot", "rpgbot.json")
}
