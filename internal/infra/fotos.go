package infra

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrFotoInvalida is returned for a photo payload that is not a decodable
// image data URI.
var ErrFotoInvalida = errors.New("fotografía inválida")

// FotoStore persists inline base64 photos as files served under /static/fotos.
type FotoStore struct {
	dir string
}

func NewFotoStore(storagePath string) (*FotoStore, error) {
	dir := filepath.Join(storagePath, "fotos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fotos: create dir: %w", err)
	}
	return &FotoStore{dir: dir}, nil
}

// Save decodes a "data:image/...;base64," URI into a uuid-named file and
// returns the server-relative path.
func (s *FotoStore) Save(dataURI string) (string, error) {
	meta, payload, found := strings.Cut(dataURI, ",")
	if !found || !strings.HasPrefix(meta, "data:image/") {
		return "", ErrFotoInvalida
	}

	ext := ".jpg"
	if strings.Contains(meta, "image/png") {
		ext = ".png"
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFotoInvalida, err)
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("fotos: write: %w", err)
	}

	return "/static/fotos/" + filename, nil
}

// Remove deletes a previously stored photo given its server-relative path.
// Unknown paths are ignored.
func (s *FotoStore) Remove(relPath string) error {
	name := strings.TrimPrefix(relPath, "/static/fotos/")
	if name == relPath || name == "" || strings.Contains(name, "/") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
