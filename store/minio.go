// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const contentType = "application/octet-stream"

// MinIOConfig holds the connection settings of an S3-compatible endpoint.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// MinIO stores objects in one bucket of a MinIO or S3-compatible server.
type MinIO struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates the client. No request is made until the first Put or Get.
func NewMinIO(cfg MinIOConfig) (*MinIO, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("store: minio: empty bucket: %w", ErrInvalidKey)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("store: minio client for %s: %w", cfg.Endpoint, err)
	}
	slog.Info("minio store initialized", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)

	return &MinIO{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads the object. A negative size streams with multipart upload.
func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	start := time.Now()
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		slog.Error("minio upload failed", "object", key, "error", err)
		return fmt.Errorf("store: minio put %s: %w", key, err)
	}
	slog.Debug("minio upload successful", "object", key, "duration", time.Since(start))

	return nil
}

// Get downloads the object. A missing key is reported as ErrNotFound.
func (m *MinIO) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	// GetObject is lazy; Stat surfaces a missing object before the caller reads.
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("store: minio get %s: %w", key, err)
	}
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("store: minio get %s: %w", key, err)
	}

	return obj, nil
}
