package storage

import (
	"context"
	"io"
	"os"
)

// Uploader persists uploaded media and hands back a URL the file is
// retrievable from by direct GET.
type Uploader interface {
	Upload(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

var uploader Uploader

// Init selects the storage driver: a MinIO bucket when STORAGE_DRIVER
// is "minio", otherwise a local uploads directory served statically.
func Init() {
	if os.Getenv("STORAGE_DRIVER") == "minio" {
		uploader = initMinio()
	} else {
		uploader = initDisk()
	}
}

// UploadFile stores the media under filename and returns its URL.
func UploadFile(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) (string, error) {
	return uploader.Upload(ctx, filename, src, size, mimeType)
}

// DeleteFile removes a stored file.
func DeleteFile(ctx context.Context, filename string) error {
	return uploader.Delete(ctx, filename)
}
