// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenface/matrix"
)

// MustDense ALLOCATES a zero-filled r×c *Dense or fails the test.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense builds an r×c *Dense from row-major vals.
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err, "NewDenseFrom(%d,%d)", r, c)

	return m
}

// IdentityDense returns the n×n identity.
func IdentityDense(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	m := MustDense(t, n, n)
	for i := 0; i < n; i++ {
		MustSet(t, m, i, i, 1)
	}

	return m
}

// RandFilledDense returns an r×c matrix with uniform values in [-1,1) from a
// fixed seed.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}

	return NewFilledDense(t, r, c, vals)
}

// MustSet writes m[i,j] = v or fails the test.
func MustSet(t testing.TB, m *matrix.Dense, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareExact requires m to equal want bitwise, row by row.
func CompareExact(t testing.TB, want [][]float64, m *matrix.Dense) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols of row %d", i)
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "[%d,%d]", i, j)
		}
	}
}

// CompareClose requires |a-b| ≤ atol + rtol·|b| element-wise and equal shapes.
func CompareClose(t testing.TB, a, b *matrix.Dense, rtol, atol float64) {
	t.Helper()
	require.Equal(t, b.Rows(), a.Rows(), "rows")
	require.Equal(t, b.Cols(), a.Cols(), "cols")
	ad, bd := a.RawData(), b.RawData()
	for k := range ad {
		require.LessOrEqual(t, math.Abs(ad[k]-bd[k]), atol+rtol*math.Abs(bd[k]),
			"element %d: %v vs %v", k, ad[k], bd[k])
	}
}

// naiveMul is the textbook product of explicitly transposed copies, used as
// the oracle for the strided kernel.
func naiveMul(t testing.TB, a *matrix.Dense, ta bool, b *matrix.Dense, tb bool) *matrix.Dense {
	t.Helper()
	if ta {
		a = transpose(t, a)
	}
	if tb {
		b = transpose(t, b)
	}
	out := MustDense(t, a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			var acc float64
			for k := 0; k < a.Cols(); k++ {
				acc += MustAt(t, a, i, k) * MustAt(t, b, k, j)
			}
			MustSet(t, out, i, j, acc)
		}
	}

	return out
}

// transpose returns an explicit transposed copy.
func transpose(t testing.TB, m *matrix.Dense) *matrix.Dense {
	t.Helper()
	out := MustDense(t, m.Cols(), m.Rows())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			MustSet(t, out, j, i, MustAt(t, m, i, j))
		}
	}

	return out
}

// propOrthonormal requires QᵀQ ≈ I.
func propOrthonormal(t testing.TB, q *matrix.Dense, tol float64) {
	t.Helper()
	qtq, err := matrix.Multiply(q, matrix.Transposed, q, matrix.Normal, 0)
	require.NoError(t, err)
	CompareClose(t, qtq, IdentityDense(t, q.Cols()), 0, tol)
}

// propEigenEquation requires A·v_j ≈ λ_j·v_j for every column j of Q.
func propEigenEquation(t testing.TB, a, q *matrix.Dense, vals []float64, tol float64) {
	t.Helper()
	aq, err := matrix.Multiply(a, matrix.Normal, q, matrix.Normal, 0)
	require.NoError(t, err)
	for j := 0; j < q.Cols(); j++ {
		for i := 0; i < q.Rows(); i++ {
			require.InDelta(t, vals[j]*MustAt(t, q, i, j), MustAt(t, aq, i, j), tol,
				"(A·v)[%d] for λ%d=%v", i, j, vals[j])
		}
	}
}
