package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataDirFor(t *testing.T) {
	home := filepath.Join("/home", "ana")

	tests := []struct {
		name string
		goos string
		env  map[string]string
		want string
	}{
		{"macOS ignores XDG", "darwin", map[string]string{"XDG_DATA_HOME": "/xdg"},
			filepath.Join(home, "Library", "Application Support", "pixtrack")},
		{"linux default", "linux", nil,
			filepath.Join(home, ".local", "share", "pixtrack")},
		{"linux XDG", "linux", map[string]string{"XDG_DATA_HOME": "/xdg"},
			filepath.Join("/xdg", "pixtrack")},
		{"freebsd behaves like linux", "freebsd", nil,
			filepath.Join(home, ".local", "share", "pixtrack")},
		{"windows local appdata first", "windows", map[string]string{"LOCALAPPDATA": `C:\Local`, "APPDATA": `C:\Roaming`},
			filepath.Join(`C:\Local`, "pixtrack")},
		{"windows roaming appdata", "windows", map[string]string{"APPDATA": `C:\Roaming`},
			filepath.Join(`C:\Roaming`, "pixtrack")},
		{"windows home fallback", "windows", nil,
			filepath.Join(home, "pixtrack")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			assert.Equal(t, tt.want, dataDirFor(tt.goos, home, getenv))
		})
	}
}

func TestDefaultDataDirEndsInAppName(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	assert.Equal(t, AppName, filepath.Base(DefaultDataDir()))
}
