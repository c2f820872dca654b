package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type diskUploader struct {
	dir     string
	baseUrl string
}

// initDisk prepares the local uploads directory. Stored files are
// retrievable at <baseUrl>/uploads/<filename>, served by the static
// route in the HTTP app.
func initDisk() *diskUploader {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("could not create uploads directory %s: %v", dir, err)
	}
	return &diskUploader{
		dir:     dir,
		baseUrl: os.Getenv("PUBLIC_BASE_URL"),
	}
}

func (d *diskUploader) Upload(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) (string, error) {
	dst, err := os.Create(filepath.Join(d.dir, filename))
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}
	return d.baseUrl + "/uploads/" + filename, nil
}

func (d *diskUploader) Delete(ctx context.Context, filename string) error {
	if err := os.Remove(filepath.Join(d.dir, filename)); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}
	return nil
}
