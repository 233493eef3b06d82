// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap these with matrixErrorf(op, err) so
// the operation name is visible; callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> mode/orientation -> shape/index -> dimension mismatch -> numeric
// (asymmetry, convergence).

var (
	// ErrInvalidDimensions indicates negative (or overflowing) matrix dimensions.
	// Zero-sized shapes are legal and never produce this error.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Column/SetColumn) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Multiply where the effective inner dimensions differ, or SubtractColumn
	// with different row counts.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrEigenFailed indicates that the Jacobi routine did not converge within
	// the configured number of sweeps.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrUnsupportedFormat is returned for an unknown InitMode/Orientation value
	// and for malformed serialized input.
	ErrUnsupportedFormat = errors.New("matrix: unsupported mode or format")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// ErrIndexOutOfRange names the same condition as ErrOutOfRange.
// Kept as an alias so errors.Is(err, ErrIndexOutOfRange) remains true.
var ErrIndexOutOfRange = ErrOutOfRange
