package infra

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore is a file-backed card.Store: one JSON object per file, keyed by
// the store key. The printing CLI uses it to persist custom areas between
// sessions.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) (string, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func (s *FileStore) Set(key, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
