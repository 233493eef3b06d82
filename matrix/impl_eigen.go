// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Symmetric eigendecomposition by cyclic Jacobi rotations.
//   - Companion helpers for the PCA pipeline: vectors-only entry point and a
//     descending sort of eigenpairs.
//
// Determinism:
//   - Pairs (p,q) are visited in fixed row-major order within every sweep, so
//     equal inputs produce bitwise-equal outputs.

package matrix

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opEigen        = "EigenSym"
	opEigenVectors = "EigenvectorsSymmetric"
	opSortEigen    = "SortEigenDescending"
)

// EigenSym computes all eigenvalues and eigenvectors of a symmetric matrix.
//
// Implementation:
//   - Stage 1: validate square and symmetric input (relative tolerance).
//   - Stage 2: work on a copy A and an identity accumulator Q.
//   - Stage 3: cyclic sweeps; in each sweep every (p,q), p<q, with A[p,q] ≠ 0
//     is annihilated by one rotation applied to A (both sides) and to Q.
//   - Stage 4: stop once ‖offdiag(A)‖_F ≤ tol·‖A‖_F; eigenvalues are diag(A).
//
// Behavior highlights:
//   - Column j of the returned matrix pairs with values[j]; the order is the
//     routine's own (not sorted). Use SortEigenDescending to sort.
//   - Vectors are orthonormal up to rounding; their sign is not normalized.
//   - A zero matrix returns zero eigenvalues and the identity without sweeping.
//
// Inputs:
//   - m: symmetric n×n matrix; it is not modified.
//   - opts: WithTolerance, WithMaxSweeps, WithSymmetryTolerance.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (wraps ErrDimensionMismatch), ErrAsymmetry,
//     ErrEigenFailed (non-finite input or no convergence after maxSweeps).
//
// Complexity:
//   - Time O(sweeps * n³), Space O(n²).
//
// Notes:
//   - Rotation: θ = (aqq−app)/(2apq), t = sign(θ)/(|θ|+√(θ²+1)),
//     c = 1/√(t²+1), s = t·c.
func EigenSym(m *Dense, opts ...EigenOption) ([]float64, *Dense, error) {
	o := gatherEigenOptions(opts...)
	if err := ValidateSymmetric(m, o.symTol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.r
	a := m.Clone()
	q := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	fro := frobenius(a.data)
	if math.IsNaN(fro) || math.IsInf(fro, 0) {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("non-finite input: %w", ErrEigenFailed))
	}
	if fro == 0 {
		return make([]float64, n), q, nil
	}
	limit := o.tol * fro

	var (
		sweep              int
		p, r               int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		newIP, newIQ       float64
		theta, t, c, s     float64
		converged          bool
	)
	ad, qd := a.data, q.data
	for sweep = 0; sweep <= o.maxSweeps; sweep++ {
		if offDiagonalNorm(ad, n) <= limit {
			converged = true
			break
		}
		if sweep == o.maxSweeps {
			break
		}
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = ad[p*n+r]
				if apq == 0 {
					continue
				}
				app = ad[p*n+p]
				aqq = ad[r*n+r]
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = ad[i*n+p]
					aiq = ad[i*n+r]
					newIP = c*aip - s*aiq
					newIQ = s*aip + c*aiq
					ad[i*n+p], ad[p*n+i] = newIP, newIP
					ad[i*n+r], ad[r*n+i] = newIQ, newIQ
				}
				ad[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				ad[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				ad[p*n+r], ad[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = qd[i*n+p]
					qiq = qd[i*n+r]
					qd[i*n+p] = c*qip - s*qiq
					qd[i*n+r] = s*qip + c*qiq
				}
			}
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen,
			fmt.Errorf("off-diagonal norm above %.3g after %d sweeps: %w", limit, o.maxSweeps, ErrEigenFailed))
	}

	values := make([]float64, n)
	for j = 0; j < n; j++ {
		values[j] = ad[j*n+j]
	}

	return values, q, nil
}

// EigenvectorsSymmetric returns only the eigenvector matrix of symmetric m
// (same shape as m, one eigenvector per column, routine order).
// Callers that need an ordering must use EigenSym and sort by the values.
func EigenvectorsSymmetric(m *Dense, opts ...EigenOption) (*Dense, error) {
	_, vectors, err := EigenSym(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opEigenVectors, err)
	}

	return vectors, nil
}

// SortEigenDescending permutes values and the columns of vectors in place
// so that values are in descending order. Equal values keep their relative
// order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(values) != vectors.Cols()).
//
// Complexity:
//   - Time O(n log n + r*n), Space O(r*n).
func SortEigenDescending(values []float64, vectors *Dense) error {
	if err := ValidateNotNil(vectors); err != nil {
		return matrixErrorf(opSortEigen, err)
	}
	if len(values) != vectors.c {
		return matrixErrorf(opSortEigen,
			fmt.Errorf("%d values for %d vectors: %w", len(values), vectors.c, ErrDimensionMismatch))
	}
	n := len(values)
	order := make([]int, n)
	var i, j int
	for i = 0; i < n; i++ {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(values[y], values[x])
	})

	sortedVals := make([]float64, n)
	sortedVecs := make([]float64, len(vectors.data))
	for j = 0; j < n; j++ {
		sortedVals[j] = values[order[j]]
		for i = 0; i < vectors.r; i++ {
			sortedVecs[i*n+j] = vectors.data[i*n+order[j]]
		}
	}
	copy(values, sortedVals)
	copy(vectors.data, sortedVecs)

	return nil
}

// frobenius returns ‖A‖_F over a flat buffer.
func frobenius(data []float64) float64 {
	var acc float64
	for _, v := range data {
		acc += v * v
	}

	return math.Sqrt(acc)
}

// offDiagonalNorm returns the Frobenius norm of the off-diagonal part of an
// n×n symmetric buffer (upper triangle counted twice).
func offDiagonalNorm(data []float64, n int) float64 {
	var (
		i, j int
		acc  float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			acc += data[i*n+j] * data[i*n+j]
		}
	}

	return math.Sqrt(2 * acc)
}
