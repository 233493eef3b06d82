// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Column/SetColumn return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Give every Dense its own buffer: Clone/Copy never alias.
//
// Complexity quicksheet:
//   - At/Set: O(1); Column/SetColumn: O(r); Clone: O(r*c); SelectColumns: O(r*k).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"            // method tag used in error wrappers
	ctxSet       = "Set"           // method tag used in error wrappers
	ctxColumn    = "Column"        // method tag used in error wrappers
	ctxSetColumn = "SetColumn"     // method tag used in error wrappers
	ctxSelect    = "SelectColumns" // ctor tag for Dense.SelectColumns
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols), both ≥ 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0; 0 is legal and means empty)
	data []float64 // contiguous row-major storage (len == r*c), never shared
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// IsEmpty reports whether the matrix holds no elements (rows==0 or cols==0).
func (m *Dense) IsEmpty() bool { return m.r == 0 || m.c == 0 }

// RawData exposes the row-major backing slice for codecs and kernel backends.
// Callers MUST treat it as read-only unless they own the matrix exclusively;
// the slice is invalidated by Release.
func (m *Dense) RawData() []float64 { return m.data }

// indexOf computes the row-major offset or returns ErrOutOfRange.
//
// Implementation:
//   - Stage 1: validate 0 ≤ row < m.r and 0 ≤ col < m.c.
//   - Stage 2: compute row*m.c + col.
//
// Behavior highlights:
//   - Returns a bare sentinel; public methods wrap with coordinates and method name.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: load from flat buffer.
//
// Errors:
//   - ErrOutOfRange when out of bounds.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: write into flat buffer.
//
// Behavior highlights:
//   - Never panics; non-finite values are stored as-is (image data is
//     validated by the ingestion collaborator, not here).
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	m.data[off] = v // direct flat write

	return nil
}

// Column returns a copy of column col as a fresh slice of length Rows().
//
// Implementation:
//   - Stage 1: bounds-check col.
//   - Stage 2: strided copy data[i*c+col] for i=0..r-1.
//
// Errors:
//   - ErrOutOfRange for an invalid column index.
//
// Complexity:
//   - Time O(r), Space O(r).
func (m *Dense) Column(col int) ([]float64, error) {
	if col < 0 || col >= m.c {
		return nil, denseErrorf(ctxColumn, 0, col, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+col]
	}

	return out, nil
}

// SetColumn overwrites column col with v (len(v) must equal Rows()).
// This is the entry point used by the image-ingestion collaborator to place
// one image per column.
//
// Errors:
//   - ErrOutOfRange for an invalid column index.
//   - ErrDimensionMismatch when len(v) != Rows().
//
// Complexity:
//   - Time O(r), Space O(1).
func (m *Dense) SetColumn(col int, v []float64) error {
	if col < 0 || col >= m.c {
		return denseErrorf(ctxSetColumn, 0, col, ErrOutOfRange)
	}
	if len(v) != m.r {
		return fmt.Errorf("Dense.%s: len %d for %d rows: %w", ctxSetColumn, len(v), m.r, ErrDimensionMismatch)
	}
	var i int
	for i = 0; i < m.r; i++ {
		m.data[i*m.c+col] = v[i]
	}

	return nil
}

// Clone returns a deep copy (new buffer, same shape).
//
// Behavior highlights:
//   - Independence: mutations do not affect the original.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data)) // allocate same length
	copy(cp, m.data)                   // deep copy

	return &Dense{r: m.r, c: m.c, data: cp}
}

// SelectColumns materializes a copy holding the listed columns in order.
// Duplicates are allowed; an empty index list yields an r×0 matrix.
//
// Implementation:
//   - Stage 1: bounds-check every index up front (no partial result).
//   - Stage 2: nested loops with direct offset math.
//
// Errors:
//   - ErrOutOfRange (index outside bounds).
//
// Complexity:
//   - Time O(r*k), Space O(r*k) for k = len(cols).
func (m *Dense) SelectColumns(cols []int) (*Dense, error) {
	k := len(cols)
	var i, j int
	for j = 0; j < k; j++ {
		if cols[j] < 0 || cols[j] >= m.c {
			return nil, fmt.Errorf("Dense.%s: col index %d: %w", ctxSelect, cols[j], ErrOutOfRange)
		}
	}
	res := &Dense{r: m.r, c: k, data: make([]float64, m.r*k)}
	var src, dst int
	for i = 0; i < m.r; i++ {
		src = i * m.c
		dst = i * k
		for j = 0; j < k; j++ {
			res.data[dst+j] = m.data[src+cols[j]]
		}
	}

	return res, nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
//
// Implementation:
//   - Stage 1: iterate rows/cols deterministically.
//   - Stage 2: write values into strings.Builder with standard delimiters.
//
// Behavior highlights:
//   - Not for hot paths; intended for logs and debugging. Use WriteText for
//     the interchange format.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			b.WriteString(strconv.FormatFloat(m.data[base+j], 'g', -1, 64))
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}
