package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// FileStore persists the credential pair as a JSON file. It is a lightweight
// way to survive process restarts on a single host. Writes go through a
// temp file and os.Rename so a reader never observes a partial pair.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	token  *oauth2.Token
	loaded bool
}

// NewFileStore creates a Store that persists the pair at the given path.
// The file is created lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.token, nil
	}
	f.loaded = true
	data, err := os.ReadFile(f.path)
	if err != nil {
		// a missing or unreadable file means signed out, not a fatal error
		return nil, nil
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, nil
	}
	if token.AccessToken == "" {
		return nil, nil
	}
	f.token = &token
	return f.token, nil
}

func (f *FileStore) Save(token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.write(token); err != nil {
		return err
	}
	f.token = token
	f.loaded = true
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	f.token = nil
	f.loaded = true
	return nil
}

func (f *FileStore) write(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
