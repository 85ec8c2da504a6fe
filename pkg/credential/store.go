// Package credential persists the API secret in a plain-text file.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Store reads and writes a single secret at Path. The secret is not
// validated locally; callers Save it after a successful remote call and
// Remove it after a failed one.
type Store struct {
	Path string
}

// New returns a store for path.
func New(path string) *Store {
	return &Store{Path: path}
}

// Load returns the stored secret, or "" when no file exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return string(data), nil
}

// Save overwrites the stored secret.
func (s *Store) Save(secret string) error {
	if err := os.WriteFile(s.Path, []byte(secret), 0o644); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Remove deletes the stored secret. A missing file is not an error.
func (s *Store) Remove() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
