// SPDX-License-Identifier: MIT

package ppm

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/eigenface/matrix"
)

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppm: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// LoadColumn decodes the image at path into column col of m.
//
// Errors:
//   - matrix.ErrDimensionMismatch when the pixel count differs from m.Rows().
//   - matrix.ErrOutOfRange for a bad column; decode and I/O errors.
func LoadColumn(path string, m *matrix.Dense, col int) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("ppm: %w", err)
	}
	img, err := ReadFile(path)
	if err != nil {
		return err
	}

	return setColumn(m, col, img, path)
}

// LoadColumns decodes paths concurrently into a P×len(paths) matrix, one
// image per column in path order. P is taken from the first image; every
// other image must match it. workers ≤ 0 means GOMAXPROCS.
func LoadColumns(ctx context.Context, paths []string, workers int) (*matrix.Dense, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("ppm: no images: %w", matrix.ErrInvalidDimensions)
	}
	first, err := ReadFile(paths[0])
	if err != nil {
		return nil, err
	}
	m, err := matrix.NewDense(first.Len(), len(paths))
	if err != nil {
		return nil, err
	}
	if err = setColumn(m, 0, first, paths[0]); err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := 1; j < len(paths); j++ {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// each goroutine owns column j
			return LoadColumn(paths[j], m, j)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

func setColumn(m *matrix.Dense, col int, img *Image, path string) error {
	if img.Len() != m.Rows() {
		return fmt.Errorf("ppm: %s has %d pixels, want %d: %w", path, img.Len(), m.Rows(), matrix.ErrDimensionMismatch)
	}
	if err := m.SetColumn(col, img.Gray); err != nil {
		return fmt.Errorf("ppm: %s: %w", path, err)
	}

	return nil
}
