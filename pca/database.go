// SPDX-License-Identifier: MIT

package pca

import (
	"context"
	"fmt"

	"github.com/katalvlaran/eigenface/backend"
	"github.com/katalvlaran/eigenface/matrix"
)

// Database is a trained eigenface model.
//
// Shapes, for P pixels, K components and N training images:
//   - Mean        P×1
//   - Eigenfaces  P×K, unit-length columns
//   - Eigenvalues K, eigenvalue of each component (descending when sorted)
//   - Projected   K×N, column j is training image j in eigenspace
//   - Labels      N
type Database struct {
	Mean        *matrix.Dense
	Eigenfaces  *matrix.Dense
	Eigenvalues []float64
	Projected   *matrix.Dense
	Labels      []string
}

// Pixels returns P, the length of every image column.
func (db *Database) Pixels() int { return db.Mean.Rows() }

// Components returns K, the dimension of eigenspace.
func (db *Database) Components() int { return db.Eigenfaces.Cols() }

// Len returns N, the number of stored training images.
func (db *Database) Len() int { return db.Projected.Cols() }

// Validate checks that the parts of db agree in shape.
//
// Errors:
//   - ErrCorruptDatabase wrapping matrix.ErrNilMatrix or matrix.ErrDimensionMismatch.
func (db *Database) Validate() error {
	if db == nil || db.Mean == nil || db.Eigenfaces == nil || db.Projected == nil {
		return fmt.Errorf("%w: %w", ErrCorruptDatabase, matrix.ErrNilMatrix)
	}
	p, k, n := db.Mean.Rows(), db.Eigenfaces.Cols(), db.Projected.Cols()
	switch {
	case db.Mean.Cols() != 1:
		return corrupt("mean is %dx%d, want %dx1", p, db.Mean.Cols(), p)
	case db.Eigenfaces.Rows() != p:
		return corrupt("eigenfaces have %d rows, mean has %d", db.Eigenfaces.Rows(), p)
	case len(db.Eigenvalues) != k:
		return corrupt("%d eigenvalues for %d eigenfaces", len(db.Eigenvalues), k)
	case db.Projected.Rows() != k:
		return corrupt("projections have %d rows, want %d", db.Projected.Rows(), k)
	case len(db.Labels) != n:
		return corrupt("%d labels for %d projections", len(db.Labels), n)
	case n == 0 || p == 0:
		return fmt.Errorf("%w: %w", ErrCorruptDatabase, ErrEmptyTrainingSet)
	}

	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrCorruptDatabase, fmt.Sprintf(format, args...), matrix.ErrDimensionMismatch)
}

// Project maps one image (P×1) to its K×1 eigenspace coordinates using the
// sequential kernels.
//
// Errors:
//   - ErrImageShape, ctx.Err(), wrapped kernel errors.
func (db *Database) Project(ctx context.Context, image *matrix.Dense) (*matrix.Dense, error) {
	return db.project(ctx, &backend.Native{Workers: 1}, image)
}

// project centers image against the mean face and multiplies by eigenfacesᵗ.
func (db *Database) project(ctx context.Context, be backend.Backend, image *matrix.Dense) (*matrix.Dense, error) {
	if err := db.checkImage(image); err != nil {
		return nil, err
	}
	centered := image.Clone()
	if err := matrix.SubtractColumn(centered, 0, db.Mean, 0); err != nil {
		return nil, fmt.Errorf("pca: center image: %w", err)
	}
	proj, err := be.Multiply(ctx, db.Eigenfaces, matrix.Transposed, centered, matrix.Normal, 1)
	if err != nil {
		return nil, fmt.Errorf("pca: project image: %w", err)
	}

	return proj, nil
}

// Reconstruct returns mean + eigenfaces·project(image), the closest image
// the eigenface basis can represent.
func (db *Database) Reconstruct(ctx context.Context, image *matrix.Dense) (*matrix.Dense, error) {
	be := &backend.Native{Workers: 1}
	proj, err := db.project(ctx, be, image)
	if err != nil {
		return nil, err
	}
	rec, err := be.Multiply(ctx, db.Eigenfaces, matrix.Normal, proj, matrix.Normal, 1)
	if err != nil {
		return nil, fmt.Errorf("pca: reconstruct: %w", err)
	}
	if err = matrix.AddColumn(rec, 0, db.Mean, 0); err != nil {
		return nil, fmt.Errorf("pca: reconstruct: %w", err)
	}

	return rec, nil
}

// checkImage requires a P×1 column.
func (db *Database) checkImage(image *matrix.Dense) error {
	if image == nil {
		return fmt.Errorf("%w: %w", ErrImageShape, matrix.ErrNilMatrix)
	}
	if image.Cols() != 1 || image.Rows() != db.Pixels() {
		return fmt.Errorf("%w: got %dx%d, want %dx1: %w",
			ErrImageShape, image.Rows(), image.Cols(), db.Pixels(), matrix.ErrDimensionMismatch)
	}

	return nil
}
