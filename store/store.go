// SPDX-License-Identifier: MIT

// Package store persists trained eigenface databases as named objects.
//
// Two drivers ship with the package: File keeps one file per object under a
// directory, MinIO keeps objects in an S3-compatible bucket. SaveDatabase and
// LoadDatabase move a pca.Database through any Store in its binary format.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/eigenface/pca"
)

// Driver names accepted by New.
const (
	DriverFile  = "file"
	DriverMinIO = "minio"
)

var (
	// ErrNotFound indicates that no object is stored under the key.
	ErrNotFound = errors.New("store: object not found")

	// ErrInvalidKey indicates an empty key or one that escapes the store root.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrUnknownDriver indicates a driver name New does not recognise.
	ErrUnknownDriver = errors.New("store: unknown driver")
)

// Store is a flat key → blob object store.
type Store interface {
	// Put stores size bytes read from r under key, replacing any previous
	// object. size < 0 means unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get opens the object stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config selects and configures a driver.
type Config struct {
	Driver string
	Dir    string
	MinIO  MinIOConfig
}

// New builds the Store named by cfg.Driver ("" means file).
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFile:
		return NewFile(cfg.Dir)
	case DriverMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// SaveDatabase serializes db and stores it under key.
func SaveDatabase(ctx context.Context, s Store, key string, db *pca.Database) error {
	var buf bytes.Buffer
	if _, err := db.WriteTo(&buf); err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	if err := s.Put(ctx, key, &buf, int64(buf.Len())); err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}

	return nil
}

// LoadDatabase reads and decodes the database stored under key.
func LoadDatabase(ctx context.Context, s Store, key string) (*pca.Database, error) {
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}
	defer rc.Close()

	db, err := pca.ReadDatabase(rc)
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", key, err)
	}

	return db, nil
}
