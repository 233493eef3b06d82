// SPDX-License-Identifier: MIT
// Package matrix_test - kernels: Multiply, column ops, MeanColumn.

package matrix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenface/matrix"
)

// ---------- 1. Multiply ----------

// TestMultiply_IdentityExact: I·X == X bitwise (and X·I).
func TestMultiply_IdentityExact(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 2, []float64{1.5, -2, 3.25, 4})
	I := IdentityDense(t, 2)

	got, err := matrix.Multiply(I, matrix.Normal, X, matrix.Normal, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1.5, -2}, {3.25, 4}}, got)

	got, err = matrix.Multiply(X, matrix.Normal, I, matrix.Normal, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1.5, -2}, {3.25, 4}}, got)
}

// TestMultiply_HandComputed: A(2×3)·B(3×2) against a hand-written result.
func TestMultiply_HandComputed(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	B := NewFilledDense(t, 3, 2, []float64{
		7, 8,
		9, 10,
		11, 12,
	})
	got, err := matrix.Multiply(A, matrix.Normal, B, matrix.Normal, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{58, 64}, {139, 154}}, got)

	// (AᵗBᵗ)... Aᵗ is 3×2, Bᵗ is 2×3 → 3×3
	got, err = matrix.Multiply(A, matrix.Transposed, B, matrix.Transposed, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{
		{39, 49, 59},
		{54, 68, 82},
		{69, 87, 105},
	}, got)
}

// TestMultiply_AllOrientations: every flag combination matches the naive
// product of explicit transposes and has the algebraic shape.
func TestMultiply_AllOrientations(t *testing.T) {
	t.Parallel()

	const r, k, c = 5, 4, 3
	for _, tc := range []struct {
		ta, tb bool
		aShape [2]int
		bShape [2]int
	}{
		{false, false, [2]int{r, k}, [2]int{k, c}},
		{true, false, [2]int{k, r}, [2]int{k, c}},
		{false, true, [2]int{r, k}, [2]int{c, k}},
		{true, true, [2]int{k, r}, [2]int{c, k}},
	} {
		t.Run(fmt.Sprintf("tA=%v,tB=%v", tc.ta, tc.tb), func(t *testing.T) {
			A := RandFilledDense(t, tc.aShape[0], tc.aShape[1], 11)
			B := RandFilledDense(t, tc.bShape[0], tc.bShape[1], 29)
			oa, ob := matrix.Normal, matrix.Normal
			if tc.ta {
				oa = matrix.Transposed
			}
			if tc.tb {
				ob = matrix.Transposed
			}
			got, err := matrix.Multiply(A, oa, B, ob, 0)
			require.NoError(t, err)
			require.Equal(t, r, got.Rows())
			require.Equal(t, c, got.Cols())
			CompareClose(t, got, naiveMul(t, A, tc.ta, B, tc.tb), 0, 1e-12)
		})
	}
}

func TestMultiply_Errors(t *testing.T) {
	t.Parallel()

	A := MustDense(t, 2, 3)
	B := MustDense(t, 2, 3)

	_, err := matrix.Multiply(A, matrix.Normal, B, matrix.Normal, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// Aᵗ(3×2)·B(2×3) is fine; Bᵗ would not be.
	_, err = matrix.Multiply(A, matrix.Transposed, B, matrix.Normal, 0)
	require.NoError(t, err)
	_, err = matrix.Multiply(A, matrix.Transposed, B, matrix.Transposed, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Multiply(nil, matrix.Normal, B, matrix.Normal, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Multiply(A, matrix.Orientation(9), B, matrix.Normal, 0)
	require.ErrorIs(t, err, matrix.ErrUnsupportedFormat)
}

// TestMultiply_ExpectedCols: a matching width is accepted, a diverging one is
// reported instead of reshaping.
func TestMultiply_ExpectedCols(t *testing.T) {
	t.Parallel()

	A := RandFilledDense(t, 3, 2, 1)
	B := RandFilledDense(t, 2, 4, 2)

	got, err := matrix.Multiply(A, matrix.Normal, B, matrix.Normal, 4)
	require.NoError(t, err)
	require.Equal(t, 4, got.Cols())

	_, err = matrix.Multiply(A, matrix.Normal, B, matrix.Normal, 3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Multiply(A, matrix.Normal, B, matrix.Normal, -1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMultiply_EmptyInner(t *testing.T) {
	t.Parallel()

	A := MustDense(t, 2, 0)
	B := MustDense(t, 0, 3)
	got, err := matrix.Multiply(A, matrix.Normal, B, matrix.Normal, 0)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, got)
}

// ---------- 2. Column kernels ----------

// TestSubtractColumn_AddRestores: subtract then add back restores the column exactly.
func TestSubtractColumn_AddRestores(t *testing.T) {
	t.Parallel()

	dst := NewFilledDense(t, 3, 2, []float64{
		10, 1,
		20, 2,
		30, 3,
	})
	src := NewFilledDense(t, 3, 1, []float64{1.5, 2.5, 3.5})
	orig := dst.Clone()

	require.NoError(t, matrix.SubtractColumn(dst, 0, src, 0))
	CompareExact(t, [][]float64{{8.5, 1}, {17.5, 2}, {26.5, 3}}, dst)

	require.NoError(t, matrix.AddColumn(dst, 0, src, 0))
	CompareExact(t, [][]float64{{10, 1}, {20, 2}, {30, 3}}, dst)
	CompareClose(t, dst, orig, 0, 0)
}

func TestSubtractColumn_Errors(t *testing.T) {
	t.Parallel()

	dst := MustDense(t, 3, 2)
	src := MustDense(t, 2, 1)
	require.ErrorIs(t, matrix.SubtractColumn(dst, 0, src, 0), matrix.ErrDimensionMismatch)

	src = MustDense(t, 3, 1)
	require.ErrorIs(t, matrix.SubtractColumn(dst, 2, src, 0), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.SubtractColumn(dst, 0, src, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.SubtractColumn(dst, -1, src, 0), matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, matrix.SubtractColumn(nil, 0, src, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.AddColumn(dst, 0, nil, 0), matrix.ErrNilMatrix)
}

// TestMeanColumn_SingleColumnUnchanged: the mean of one column is that column.
func TestMeanColumn_SingleColumnUnchanged(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 4, 1, []float64{0.1, -7.3, 1e-9, 255})
	m, err := matrix.MeanColumn(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0.1}, {-7.3}, {1e-9}, {255}}, m)
}

// TestMeanColumn_IdenticalColumnsExact: identical columns give their content
// back bit for bit, including values whose running sum rounds.
func TestMeanColumn_IdenticalColumnsExact(t *testing.T) {
	t.Parallel()

	col := []float64{0.1, 0.2, 0.3, 1.0 / 3.0, 127.45, 0.587 * 211}
	for _, n := range []int{2, 3, 7, 10} {
		a := MustDense(t, len(col), n)
		for j := 0; j < n; j++ {
			require.NoError(t, a.SetColumn(j, col))
		}
		m, err := matrix.MeanColumn(a)
		require.NoError(t, err)
		got, err := m.Column(0)
		require.NoError(t, err)
		require.Equal(t, col, got, "n=%d", n)
	}
}

func TestMeanColumn_Values(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 4, []float64{
		1, 2, 3, 4,
		-1, -1, 5, 1,
	})
	m, err := matrix.MeanColumn(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{2.5}, {1}}, m)

	z, err := matrix.MeanColumn(MustDense(t, 3, 0))
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0}, {0}, {0}}, z)

	_, err = matrix.MeanColumn(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestColumnNormAndScale(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{
		3, 1,
		4, 1,
	})
	n, err := matrix.ColumnNorm(m, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, n)

	require.NoError(t, matrix.ScaleColumn(m, 0, 1/n))
	CompareClose(t, m, NewFilledDense(t, 2, 2, []float64{0.6, 1, 0.8, 1}), 0, 1e-15)

	_, err = matrix.ColumnNorm(m, 5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, matrix.ScaleColumn(nil, 0, 2), matrix.ErrNilMatrix)
}
