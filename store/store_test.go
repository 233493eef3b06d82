// SPDX-License-Identifier: MIT
package store_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenface/matrix"
	"github.com/katalvlaran/eigenface/pca"
	"github.com/katalvlaran/eigenface/store"
)

func readAll(t *testing.T, s store.Store, key string) string {
	t.Helper()
	rc, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)

	return string(b)
}

func TestFile_PutGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := store.NewFile(filepath.Join(t.TempDir(), "dbs"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "faces", strings.NewReader("first"), 5))
	require.Equal(t, "first", readAll(t, s, "faces"))

	// overwrite, unknown size, nested key
	require.NoError(t, s.Put(ctx, "faces", strings.NewReader("second"), -1))
	require.Equal(t, "second", readAll(t, s, "faces"))
	require.NoError(t, s.Put(ctx, "team/a.efdb", strings.NewReader("x"), 1))
	require.Equal(t, "x", readAll(t, s, "team/a.efdb"))

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	for _, key := range []string{"", "../escape", "/abs"} {
		require.ErrorIs(t, s.Put(ctx, key, strings.NewReader(""), 0), store.ErrInvalidKey, key)
		_, err = s.Get(ctx, key)
		require.ErrorIs(t, err, store.ErrInvalidKey, key)
	}
}

func TestFile_ShortInputLeavesOldObject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := store.NewFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", strings.NewReader("keep"), 4))

	err = s.Put(ctx, "k", strings.NewReader("ab"), 10)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "keep", readAll(t, s, "k"))

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be cleaned up")
}

func TestFile_CanceledContext(t *testing.T) {
	t.Parallel()

	s, err := store.NewFile(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Put(ctx, "k", strings.NewReader("v"), 1), context.Canceled)
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSaveLoadDatabase(t *testing.T) {
	t.Parallel()

	images, err := matrix.NewDenseFrom(4, 3, []float64{
		1, 2, 9,
		0, 5, 1,
		3, 3, 3,
		7, 0, 2,
	})
	require.NoError(t, err)
	db, err := pca.Train(context.Background(), images, []string{"a", "b", "c"},
		pca.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	s, err := store.New(store.Config{Driver: store.DriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.SaveDatabase(context.Background(), s, "faces.efdb", db))

	got, err := store.LoadDatabase(context.Background(), s, "faces.efdb")
	require.NoError(t, err)
	require.Equal(t, db.Labels, got.Labels)
	require.Equal(t, db.Eigenfaces.RawData(), got.Eigenfaces.RawData())
	require.Equal(t, db.Projected.RawData(), got.Projected.RawData())

	_, err = store.LoadDatabase(context.Background(), s, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(context.Background(), "junk", bytes.NewReader([]byte("not a db")), 8))
	_, err = store.LoadDatabase(context.Background(), s, "junk")
	require.ErrorIs(t, err, pca.ErrCorruptDatabase)
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := store.New(store.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &store.File{}, s)

	// the client is created lazily; no server is contacted here
	s, err = store.New(store.Config{Driver: store.DriverMinIO, MinIO: store.MinIOConfig{
		Endpoint: "localhost:9000", AccessKeyID: "id", SecretAccessKey: "secret", Bucket: "faces",
	}})
	require.NoError(t, err)
	require.IsType(t, &store.MinIO{}, s)

	_, err = store.New(store.Config{Driver: store.DriverMinIO, MinIO: store.MinIOConfig{Endpoint: "localhost:9000"}})
	require.ErrorIs(t, err, store.ErrInvalidKey)

	_, err = store.New(store.Config{Driver: "ftp"})
	require.ErrorIs(t, err, store.ErrUnknownDriver)
}
