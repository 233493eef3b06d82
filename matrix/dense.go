// SPDX-License-Identifier: MIT

// Package matrix - allocation, copy and release of Dense matrices.
//
// Allocation always names its initialization mode explicitly. Go's make()
// zero-fills, so Uninitialized currently returns zeros as well; callers must
// not rely on that and have to fill the buffer before reading it.
package matrix

import (
	"fmt"
	"math"
)

// InitMode selects how Allocate initializes the element buffer.
type InitMode uint8

const (
	// Uninitialized makes no guarantee about initial contents; the caller
	// fills every element before the first read.
	Uninitialized InitMode = iota

	// ZeroFilled guarantees every element starts at 0.0.
	ZeroFilled
)

// String returns the mode name for logs and error messages.
func (im InitMode) String() string {
	switch im {
	case Uninitialized:
		return "Uninitialized"
	case ZeroFilled:
		return "ZeroFilled"
	default:
		return "InitMode(" + fmt.Sprint(uint8(im)) + ")"
	}
}

const opAllocate = "Allocate"

// Allocate creates a rows×cols Dense with the requested initialization mode.
//
// Implementation:
//   - Stage 1: reject unknown modes (ErrUnsupportedFormat).
//   - Stage 2: validate rows ≥ 0, cols ≥ 0 and that rows*cols fits in int.
//   - Stage 3: allocate the flat buffer.
//
// Behavior highlights:
//   - Zero-sized shapes (0×N, N×0) are legal and produce an empty matrix.
//
// Errors:
//   - ErrUnsupportedFormat for an unknown mode.
//   - ErrInvalidDimensions for negative or overflowing shapes.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Allocate(mode InitMode, rows, cols int) (*Dense, error) {
	if mode != Uninitialized && mode != ZeroFilled {
		return nil, matrixErrorf(opAllocate, fmt.Errorf("%s: %w", mode, ErrUnsupportedFormat))
	}
	n, err := elementCount(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAllocate, err)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, n)}, nil
}

// NewDense creates a zero-filled rows×cols matrix.
// Shorthand for Allocate(ZeroFilled, rows, cols).
func NewDense(rows, cols int) (*Dense, error) {
	return Allocate(ZeroFilled, rows, cols)
}

// NewDenseFrom creates a rows×cols matrix holding a copy of data (row-major).
//
// Errors:
//   - ErrInvalidDimensions for negative shapes.
//   - ErrDimensionMismatch when len(data) != rows*cols.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	n, err := elementCount(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAllocate, err)
	}
	if len(data) != n {
		return nil, matrixErrorf(opAllocate, fmt.Errorf("len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch))
	}
	buf := make([]float64, n)
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// Copy returns a deep copy of m with an independent buffer.
//
// Errors:
//   - ErrNilMatrix when m is nil.
func Copy(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("Copy", ErrNilMatrix)
	}

	return m.Clone(), nil
}

// Release drops the buffer and resets the shape to 0×0.
// Releasing twice is a no-op; a released matrix behaves as an empty one.
func (m *Dense) Release() {
	if m == nil {
		return
	}
	m.r, m.c = 0, 0
	m.data = nil
}

// elementCount validates a shape and returns rows*cols.
func elementCount(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	if cols != 0 && rows > math.MaxInt/cols {
		return 0, fmt.Errorf("%dx%d overflows: %w", rows, cols, ErrInvalidDimensions)
	}

	return rows * cols, nil
}
