package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user data directory.
const AppName = "pixtrack"

// DefaultDataDir returns where pixtrack keeps credentials, activities.yaml
// and its log when PIXTRACK_DIR is not set.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return dataDirFor(runtime.GOOS, home, os.Getenv)
}

// dataDirFor resolves the data directory for goos. The first non-empty
// environment root wins, else the home-relative fallback is used.
func dataDirFor(goos, home string, getenv func(string) string) string {
	var envRoots []string
	var fallback string

	switch goos {
	case "darwin":
		fallback = filepath.Join(home, "Library", "Application Support")
	case "windows":
		envRoots = []string{"LOCALAPPDATA", "APPDATA"}
		fallback = home
	default:
		envRoots = []string{"XDG_DATA_HOME"}
		fallback = filepath.Join(home, ".local", "share")
	}

	for _, key := range envRoots {
		if root := getenv(key); root != "" {
			return filepath.Join(root, AppName)
		}
	}
	return filepath.Join(fallback, AppName)
}
