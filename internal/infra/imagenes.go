package infra

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageResolver loads the images referenced by a card layout before the
// print document is composed: bundled assets from disk, stored photos and QR
// codes from the storage directory, inline data URIs, and remote URLs over
// HTTP. It satisfies card.ImageResolver.
type ImageResolver struct {
	assetsPath  string
	storagePath string
	httpClient  *http.Client
}

func NewImageResolver(assetsPath, storagePath string) *ImageResolver {
	return &ImageResolver{
		assetsPath:  assetsPath,
		storagePath: storagePath,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *ImageResolver) Resolve(ref string) ([]byte, string, error) {
	switch {
	case ref == "":
		return nil, "", nil

	case strings.HasPrefix(ref, "data:image/"):
		meta, payload, found := strings.Cut(ref, ",")
		if !found {
			return nil, "", ErrFotoInvalida
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrFotoInvalida, err)
		}
		return raw, imageType(meta), nil

	case strings.HasPrefix(ref, "assets/"):
		path := filepath.Join(r.assetsPath, strings.TrimPrefix(ref, "assets/"))
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return raw, imageType(path), nil

	case strings.HasPrefix(ref, "/static/"):
		path := filepath.Join(r.storagePath, strings.TrimPrefix(ref, "/static/"))
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return raw, imageType(path), nil

	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		resp, err := r.httpClient.Get(ref)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("imagenes: %s returned %d", ref, resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return raw, imageType(ref), nil
	}

	return nil, "", nil
}

// imageType infers the fpdf image type from a path, URL or data URI header.
func imageType(s string) string {
	if strings.Contains(strings.ToLower(s), "png") {
		return "PNG"
	}
	return "JPG"
}
