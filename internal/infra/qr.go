package infra

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQR encodes the validation URL for a credential and writes the PNG
// under storagePath/qr. Returns the server-relative path stored on the
// credential row.
func GenerateQR(validationURL string, credencialID int, storagePath string) (string, error) {
	dir := filepath.Join(storagePath, "qr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("qr: create dir: %w", err)
	}

	filename := fmt.Sprintf("credencial_%d.png", credencialID)
	if err := qrcode.WriteFile(validationURL, qrcode.Medium, 256, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("qr: encode: %w", err)
	}

	return "/static/qr/" + filename, nil
}
