// Package storage is the object store used for room photos.
//
// Three drivers are available:
//   - "local" — local filesystem served under /storage (default)
//   - "s3"    — AWS S3 and S3-compatible services via aws-sdk-go-v2
//   - "minio" — MinIO via minio-go
//
//	m, _ := storage.NewManager(ctx)
//	disk := m.Default()
//	_ = disk.Put(ctx, "room-photos/abc.jpg", file, size, "image/jpeg")
//	url := disk.URL("room-photos/abc.jpg")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when reading an object that does not exist.
var ErrNotExist = errors.New("storage: object does not exist")

// Disk is the object storage driver interface.
type Disk interface {
	// Put stores r under path. size may be -1 when unknown.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// Get opens the object at path. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
