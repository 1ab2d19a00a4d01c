package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	credentialsFile = "credentials.yaml"
	activitiesFile  = "activities.yaml"
)

// Store manages the small amount of state pixtrack keeps on disk.
type Store struct {
	Root string // e.g., ~/.local/share/pixtrack
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory if it doesn't exist.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// CredentialsPath returns the path to credentials.yaml.
func (s *Store) CredentialsPath() string {
	return filepath.Join(s.Root, credentialsFile)
}

// ActivitiesPath returns the path to the optional activities.yaml override.
func (s *Store) ActivitiesPath() string {
	return filepath.Join(s.Root, activitiesFile)
}

// LogPath returns the path of the TUI log file.
func (s *Store) LogPath() string {
	return filepath.Join(s.Root, "pixtrack.log")
}

// LoadCredentials reads persisted credentials. A missing or incomplete file
// is not an error: ok is false and the caller should ask for settings.
func (s *Store) LoadCredentials() (creds Credentials, ok bool, err error) {
	data, err := os.ReadFile(s.CredentialsPath())
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("reading %s: %w", credentialsFile, err)
	}

	creds, err = ParseCredentials(data)
	if err != nil {
		return Credentials{}, false, err
	}
	if !creds.Complete() {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

// SaveCredentials writes credentials.yaml, replacing any previous copy.
func (s *Store) SaveCredentials(c Credentials) error {
	data, err := SerializeCredentials(c)
	if err != nil {
		return err
	}

	tmp := s.CredentialsPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", credentialsFile, err)
	}
	if err := os.Rename(tmp, s.CredentialsPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", credentialsFile, err)
	}
	return nil
}

// ClearCredentials removes any persisted credentials. Clearing when nothing is
// persisted is a no-op.
func (s *Store) ClearCredentials() error {
	err := os.Remove(s.CredentialsPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", credentialsFile, err)
	}
	return nil
}
