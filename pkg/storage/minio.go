package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig configures the MinIO driver.
type MinioConfig struct {
	Endpoint string
	Key      string
	Secret   string
	Bucket   string
	UseSSL   bool
	BaseURL  string
}

// MinioDisk stores objects in a MinIO bucket, creating it on first use.
type MinioDisk struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioDisk(ctx context.Context, cfg MinioConfig) (*MinioDisk, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storage/minio: MINIO_ENDPOINT is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Key, cfg.Secret, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: init client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage/minio: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage/minio: create bucket: %w", err)
		}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioDisk{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (d *MinioDisk) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := d.client.PutObject(ctx, d.bucket, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storage/minio: put %s: %w", path, err)
	}
	return nil
}

func (d *MinioDisk) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	if ok, err := d.Exists(ctx, path); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
	}

	obj, err := d.client.GetObject(ctx, d.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: get %s: %w", path, err)
	}
	return obj, nil
}

func (d *MinioDisk) Exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.StatObject(ctx, d.bucket, path, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("storage/minio: stat %s: %w", path, err)
}

func (d *MinioDisk) Delete(ctx context.Context, path string) error {
	if err := d.client.RemoveObject(ctx, d.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage/minio: delete %s: %w", path, err)
	}
	return nil
}

func (d *MinioDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}
