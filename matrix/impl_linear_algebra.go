// SPDX-License-Identifier: MIT
// Package matrix provides the arithmetic kernels of the PCA pipeline:
// multiplication with an independent orientation per operand, column
// subtraction/addition and the mean column. All functions perform strict
// fail-fast validation and return wrapped sentinels on contract violations.
//
// Purpose:
//   - Define operation tags and shared constants for determinism and error reporting.
//   - Keep the hot loops on flat row-major slices (no At/Set in inner loops).

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value of every accumulation.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMultiply       = "Multiply"
	opSubtractColumn = "SubtractColumn"
	opAddColumn      = "AddColumn"
	opMeanColumn     = "MeanColumn"
	opColumnNorm     = "ColumnNorm"
	opScaleColumn    = "ScaleColumn"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Orientation tells a kernel whether to read an operand as stored or as its
// transpose. Only Normal and Transposed are valid.
type Orientation uint8

const (
	// Normal reads the operand as stored.
	Normal Orientation = iota
	// Transposed reads the operand as its transpose.
	Transposed
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Normal:
		return "Normal"
	case Transposed:
		return "Transposed"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// shape returns the effective (rows, cols) of m read with orientation o.
func (o Orientation) shape(m *Dense) (rows, cols int) {
	if o == Transposed {
		return m.c, m.r
	}

	return m.r, m.c
}

// strides returns the flat-offset steps of m read with orientation o:
// element (i,j) of op(m) lives at i*rowStep + j*colStep.
func (o Orientation) strides(m *Dense) (rowStep, colStep int) {
	if o == Transposed {
		return 1, m.c
	}

	return m.c, 1
}

// mulPlan captures a validated multiply: operands, strides and result shape.
type mulPlan struct {
	a, b             *Dense
	aRow, aInner     int // op(A)(i,k) = a.data[i*aRow + k*aInner]
	bInner, bCol     int // op(B)(k,j) = b.data[k*bInner + j*bCol]
	rows, cols, kDim int
}

// planMultiply validates the operands and resolves strides and result shape.
//
// Behavior highlights:
//   - expectedCols > 0 must equal the natural result width; a divergence is
//     reported as ErrDimensionMismatch instead of reshaping the result.
func planMultiply(a *Dense, ta Orientation, b *Dense, tb Orientation, expectedCols int) (mulPlan, error) {
	if err := ValidateMulCompatible(a, ta, b, tb); err != nil {
		return mulPlan{}, err
	}
	rows, kDim := ta.shape(a)
	_, cols := tb.shape(b)
	if expectedCols < 0 || (expectedCols > 0 && expectedCols != cols) {
		return mulPlan{}, fmt.Errorf("expected %d result columns, operands give %d: %w", expectedCols, cols, ErrDimensionMismatch)
	}
	p := mulPlan{a: a, b: b, rows: rows, cols: cols, kDim: kDim}
	p.aRow, p.aInner = ta.strides(a)
	p.bInner, p.bCol = tb.strides(b)

	return p, nil
}

// rowsInto computes result rows [r0, r1) into out (len rows*cols).
// The inner index k is visited in increasing order so every output element
// sees the same summation order regardless of how rows are partitioned.
func (p *mulPlan) rowsInto(out []float64, r0, r1 int) {
	var (
		i, j, k int
		acc     float64
		ai, bj  int
	)
	ad, bd := p.a.data, p.b.data
	for i = r0; i < r1; i++ {
		ai = i * p.aRow
		for j = 0; j < p.cols; j++ {
			bj = j * p.bCol
			acc = ZeroSum
			for k = 0; k < p.kDim; k++ {
				acc += ad[ai+k*p.aInner] * bd[k*p.bInner+bj]
			}
			out[i*p.cols+j] = acc
		}
	}
}

// Multiply computes C = op(A) × op(B) with an independent orientation per operand.
//
// Implementation:
//   - Stage 1: validate non-nil operands, orientation values and effective
//     inner dimensions; resolve expectedCols.
//   - Stage 2: allocate C (rows of op(A) × cols of op(B)).
//   - Stage 3: triple loop i→j→k over strided flat buffers; one code path
//     serves all four orientation combinations.
//
// Inputs:
//   - a, ta: left operand and its orientation.
//   - b, tb: right operand and its orientation.
//   - expectedCols: 0 to accept the natural width; otherwise the width the
//     caller expects (mismatch is an error, never a silent reshape).
//
// Errors:
//   - ErrNilMatrix, ErrUnsupportedFormat (bad orientation),
//     ErrDimensionMismatch (inner dimensions or expectedCols).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Multiply(a *Dense, ta Orientation, b *Dense, tb Orientation, expectedCols int) (*Dense, error) {
	p, err := planMultiply(a, ta, b, tb, expectedCols)
	if err != nil {
		return nil, matrixErrorf(opMultiply, err)
	}
	res := &Dense{r: p.rows, c: p.cols, data: make([]float64, p.rows*p.cols)}
	p.rowsInto(res.data, 0, p.rows)

	return res, nil
}

// SubtractColumn performs dst[:,dstCol] -= src[:,srcCol] in place.
// Used to center images against the mean face.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ),
//     ErrOutOfRange (either column index).
//
// Complexity:
//   - Time O(r), Space O(1).
func SubtractColumn(dst *Dense, dstCol int, src *Dense, srcCol int) error {
	if err := columnOpCheck(dst, dstCol, src, srcCol); err != nil {
		return matrixErrorf(opSubtractColumn, err)
	}
	var i int
	for i = 0; i < dst.r; i++ {
		dst.data[i*dst.c+dstCol] -= src.data[i*src.c+srcCol]
	}

	return nil
}

// AddColumn performs dst[:,dstCol] += src[:,srcCol] in place; the inverse of
// SubtractColumn.
//
// Errors: same as SubtractColumn.
func AddColumn(dst *Dense, dstCol int, src *Dense, srcCol int) error {
	if err := columnOpCheck(dst, dstCol, src, srcCol); err != nil {
		return matrixErrorf(opAddColumn, err)
	}
	var i int
	for i = 0; i < dst.r; i++ {
		dst.data[i*dst.c+dstCol] += src.data[i*src.c+srcCol]
	}

	return nil
}

// columnOpCheck is the shared precondition of the in-place column kernels.
func columnOpCheck(dst *Dense, dstCol int, src *Dense, srcCol int) error {
	if dst == nil || src == nil {
		return ErrNilMatrix
	}
	if err := ValidateSameRows(dst, src); err != nil {
		return err
	}
	if err := ValidateColumn(dst, dstCol); err != nil {
		return err
	}

	return ValidateColumn(src, srcCol)
}

// MeanColumn returns the rows×1 column whose entry i is the mean of row i.
//
// Implementation:
//   - Stage 1: per row, running sum over the columns in order, divided once by cols.
//   - Stage 2: one correction pass adds the mean residual Σ(x-mean)/cols.
//
// Behavior highlights:
//   - A single-column input is returned unchanged (x/1 == x).
//   - Rows whose entries are all equal yield that value exactly; the
//     correction absorbs the rounding of the running sum.
//   - A rows×0 input yields a rows×1 zero column.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MeanColumn(a *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMeanColumn, err)
	}
	res := &Dense{r: a.r, c: 1, data: make([]float64, a.r)}
	if a.c == 0 {
		return res, nil
	}
	n := float64(a.c)
	var (
		i, j, base int
		sum, mean  float64
		resid      float64
	)
	for i = 0; i < a.r; i++ {
		base = i * a.c
		sum = ZeroSum
		for j = 0; j < a.c; j++ {
			sum += a.data[base+j]
		}
		mean = sum / n
		resid = ZeroSum
		for j = 0; j < a.c; j++ {
			resid += a.data[base+j] - mean
		}
		res.data[i] = mean + resid/n
	}

	return res, nil
}

// ColumnNorm returns the Euclidean norm of column col.
//
// Errors: ErrNilMatrix, ErrOutOfRange.
// Complexity: O(r).
func ColumnNorm(m *Dense, col int) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opColumnNorm, err)
	}
	if err := ValidateColumn(m, col); err != nil {
		return 0, matrixErrorf(opColumnNorm, err)
	}
	var (
		i   int
		acc float64
		v   float64
	)
	for i = 0; i < m.r; i++ {
		v = m.data[i*m.c+col]
		acc += v * v
	}

	return math.Sqrt(acc), nil
}

// ScaleColumn multiplies column col by alpha in place.
//
// Errors: ErrNilMatrix, ErrOutOfRange.
// Complexity: O(r).
func ScaleColumn(m *Dense, col int, alpha float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opScaleColumn, err)
	}
	if err := ValidateColumn(m, col); err != nil {
		return matrixErrorf(opScaleColumn, err)
	}
	var i int
	for i = 0; i < m.r; i++ {
		m.data[i*m.c+col] *= alpha
	}

	return nil
}
