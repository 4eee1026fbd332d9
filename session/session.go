/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package session remembers which game this client joined and which seat it
// plays, across runs. Storage is best-effort: a failed read looks like an
// empty session and a failed write is logged by the caller and ignored.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

const (
	KeyGameID = "gameID"
	KeyPlayer = "player"
)

var ErrStorage = errors.New("session storage unavailable")

type Logger interface {
	Printf(format string, args ...any)
}

// Store is a small string key/value store.
type Store interface {
	// Get returns "" when the key is absent or storage cannot be read.
	Get(key string) string
	Set(key, value string) error
}

// FileStore keeps all keys in one JSON object on disk.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger Logger

	mu sync.Mutex
}

func NewFileStore(fs afero.Fs, path string, logger Logger) *FileStore {
	return &FileStore{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	return values, nil
}

func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		s.logger.Printf("SESSION: Unable to read %s: %v", s.path, err)
		return ""
	}

	return values[key]
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		// Unreadable contents are overwritten.
		s.logger.Printf("SESSION: Discarding unreadable %s: %v", s.path, err)
		values = map[string]string{}
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}

// DefaultPath returns the session file location under the user's config
// directory, falling back to the home directory.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "clueless", "session.json")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".clueless.json")
	}
	return ".clueless.json"
}
