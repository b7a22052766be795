package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName     = "starcluster"
	configFileName = ".starclustercfg"
)

// AppLocalDataDir returns the OS-appropriate local data directory.
// This is where the cluster registry and the log file live.
//   - macOS: ~/Library/Application Support/starcluster
//   - Linux: $XDG_DATA_HOME/starcluster or ~/.local/share/starcluster
//   - Windows: %LOCALAPPDATA%\starcluster
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns the default cluster configuration file, ~/.starclustercfg.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, configFileName), nil
}

// DBPath returns the path to the local cluster registry database.
func DBPath() string {
	return filepath.Join(AppLocalDataDir(), "clusters.db")
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppLocalDataDir(), "starcluster.log")
}
