// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/index/symmetry checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    add the operation tag on top.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateColumn ensures 0 ≤ col < m.Cols(). Assumes m is non-nil.
// Complexity: O(1).
func ValidateColumn(m *Dense, col int) error {
	if col < 0 || col >= m.c {
		return validatorErrorf("ValidateColumn", fmt.Errorf("column %d of %d: %w", col, m.c, ErrOutOfRange))
	}

	return nil
}

// ValidateSameRows ensures a and b have the same row count. Assumes non-nil.
// Complexity: O(1).
func ValidateSameRows(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameRows", fmt.Errorf("%d vs %d rows: %w", a.r, b.r, ErrDimensionMismatch))
	}

	return nil
}

// ValidateOrientation ensures o is one of Normal/Transposed.
// Complexity: O(1).
func ValidateOrientation(o Orientation) error {
	if o != Normal && o != Transposed {
		return validatorErrorf("ValidateOrientation", fmt.Errorf("%s: %w", o, ErrUnsupportedFormat))
	}

	return nil
}

// ValidateMulCompatible checks nil operands, orientation values and that the
// effective inner dimensions of op(a) and op(b) agree.
//
// Errors: ErrNilMatrix, ErrUnsupportedFormat, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a *Dense, ta Orientation, b *Dense, tb Orientation) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulCompatible", ErrNilMatrix)
	}
	if err := ValidateOrientation(ta); err != nil {
		return err
	}
	if err := ValidateOrientation(tb); err != nil {
		return err
	}
	ar, ak := ta.shape(a)
	bk, bc := tb.shape(b)
	if ak != bk {
		return validatorErrorf("ValidateMulCompatible",
			fmt.Errorf("op(A) %dx%d * op(B) %dx%d: %w", ar, ak, bk, bc, ErrDimensionMismatch))
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
//
// Errors: ErrNilMatrix, ErrNonSquare (which also matches ErrDimensionMismatch
// through the wrapped chain).
// Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare",
			fmt.Errorf("%dx%d: %w (%w)", m.r, m.c, ErrNonSquare, ErrDimensionMismatch))
	}

	return nil
}

// ValidateSymmetric checks m is square and |A[i,j] - A[j,i]| ≤ tol·scale for
// all i<j, where scale = max(1, max|A|). The relative scale keeps the check
// meaningful for pixel-magnitude Gram matrices.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrAsymmetry.
// Complexity: O(n²). Space: O(1).
func ValidateSymmetric(m *Dense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.r
	if n <= 1 {
		return nil // trivially symmetric
	}
	scale := 1.0
	for _, v := range m.data {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}
	limit := math.Abs(tol) * scale

	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // scan only upper triangle
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > limit {
				return validatorErrorf("ValidateSymmetric", fmt.Errorf("at (%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}
