package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the user's config directory for walpha.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".walpha-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "walpha"))
}

// GetDataDir returns the user's data directory for walpha (logs).
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".walpha"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".walpha"))
}
