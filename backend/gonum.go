// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/eigenface/matrix"
)

// Gonum delegates the kernels to gonum.org/v1/gonum/mat.
//
// gonum panics on zero-length dimensions and on shape mismatches, so every
// call is validated with the matrix package first and empty shapes are served
// by the native kernels. Errors therefore carry the same sentinels as Native.
type Gonum struct{}

var _ Backend = (*Gonum)(nil)

// Name implements Backend.
func (g *Gonum) Name() string { return NameGonum }

// Multiply implements Backend via mat.Dense.Mul.
func (g *Gonum) Multiply(ctx context.Context, a *matrix.Dense, ta matrix.Orientation, b *matrix.Dense, tb matrix.Orientation, expectedCols int) (*matrix.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := matrix.ValidateMulCompatible(a, ta, b, tb); err != nil {
		return nil, fmt.Errorf("gonum Multiply: %w", err)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return matrix.Multiply(a, ta, b, tb, expectedCols)
	}
	opA, opB := view(a, ta), view(b, tb)
	_, cols := opB.Dims()
	if expectedCols < 0 || (expectedCols > 0 && expectedCols != cols) {
		return nil, fmt.Errorf("gonum Multiply: expected %d result columns, operands give %d: %w",
			expectedCols, cols, matrix.ErrDimensionMismatch)
	}
	var c mat.Dense
	c.Mul(opA, opB)

	return fromGonum(&c)
}

// SurrogateCovariance implements Backend via mat.SymDense.SymOuterK on aᵗ.
func (g *Gonum) SurrogateCovariance(ctx context.Context, a *matrix.Dense) (*matrix.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("gonum SurrogateCovariance: %w", err)
	}
	if a.IsEmpty() {
		return matrix.SurrogateCovariance(a)
	}
	var s mat.SymDense
	s.SymOuterK(1, view(a, matrix.Transposed))

	return fromGonum(&s)
}

// EigenSymmetric implements Backend via mat.EigenSym (ascending eigenvalues).
// Only the upper triangle of m is read once symmetry is validated; NaN or
// Inf input fails with matrix.ErrEigenFailed as in matrix.EigenSym.
func (g *Gonum) EigenSymmetric(ctx context.Context, m *matrix.Dense) ([]float64, *matrix.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := matrix.ValidateSymmetric(m, matrix.DefaultSymmetryTolerance); err != nil {
		return nil, nil, fmt.Errorf("gonum EigenSymmetric: %w", err)
	}
	if m.IsEmpty() {
		return matrix.EigenSym(m)
	}
	n := m.Rows()
	sym := mat.NewSymDense(n, append([]float64(nil), m.RawData()...))
	if norm := mat.Norm(sym, 2); math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, nil, fmt.Errorf("gonum EigenSymmetric: non-finite input: %w", matrix.ErrEigenFailed)
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("gonum EigenSymmetric: factorization failed: %w", matrix.ErrEigenFailed)
	}
	values := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)
	vectors, err := fromGonum(&ev)
	if err != nil {
		return nil, nil, err
	}

	return values, vectors, nil
}

// view wraps the row-major buffer of m without copying and applies o.
func view(m *matrix.Dense, o matrix.Orientation) mat.Matrix {
	d := mat.NewDense(m.Rows(), m.Cols(), m.RawData())
	if o == matrix.Transposed {
		return d.T()
	}

	return d
}

// fromGonum copies any gonum matrix into a fresh matrix.Dense.
func fromGonum(src mat.Matrix) (*matrix.Dense, error) {
	r, c := src.Dims()
	out, err := matrix.Allocate(matrix.Uninitialized, r, c)
	if err != nil {
		return nil, err
	}
	data := out.RawData()
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data[i*c+j] = src.At(i, j)
		}
	}

	return out, nil
}
