// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical building blocks of the eigenface pipeline:
//     centering a set of image columns against their mean and the surrogate
//     covariance AᵗA computed on the upper triangle only.
//
// Exposed API:
//   - SurrogateCovariance(A) -> AᵗA (cols×cols, exactly symmetric)
//   - CenterColumns(A)       -> (Ac, mean) // Ac[:,j] = A[:,j] - mean
//
// Determinism & Performance:
//   - Fixed i→j→k traversal; the inner product visits rows of A in order.
//   - Half of the N² inner products are computed; the other half are mirrored.

package matrix

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSurrogate     = "SurrogateCovariance"
	opCenterColumns = "CenterColumns"
)

// surrogateRow computes out[i][j] for j ≥ i and mirrors each value to
// out[j][i]. Tasks with distinct i write disjoint elements, so rows can be
// distributed across goroutines without locking.
//
// Complexity: O(r*(c-i)).
func surrogateRow(a *Dense, out []float64, i int) {
	var (
		j, k int
		acc  float64
	)
	n := a.c
	ad := a.data
	for j = i; j < n; j++ {
		acc = ZeroSum
		for k = 0; k < a.r; k++ {
			acc += ad[k*n+i] * ad[k*n+j]
		}
		out[i*n+j] = acc
		out[j*n+i] = acc
	}
}

// SurrogateCovariance returns the cols×cols matrix AᵗA.
//
// Implementation:
//   - Stage 1: validate A (non-nil).
//   - Stage 2: for every i ≤ j, inner product of columns i and j over A's rows.
//   - Stage 3: mirror each computed entry to its transpose position.
//
// Behavior highlights:
//   - The result is exactly symmetric: [i][j] and [j][i] share one computation.
//   - For N training images of P pixels the eigenproblem shrinks from P×P to N×N;
//     eigenvectors v of AᵗA lift to image space as A·v.
//   - A with zero columns yields a 0×0 result; zero rows yield an all-zero N×N.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c²/2), Space O(c²).
func SurrogateCovariance(a *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSurrogate, err)
	}
	res := &Dense{r: a.c, c: a.c, data: make([]float64, a.c*a.c)}
	var i int
	for i = 0; i < a.c; i++ {
		surrogateRow(a, res.data, i)
	}

	return res, nil
}

// CenterColumns returns a centered copy of a together with the mean column:
// Ac[:,j] = A[:,j] - MeanColumn(A) for every j. A is left untouched.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(a *Dense) (centered, mean *Dense, err error) {
	if mean, err = MeanColumn(a); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	centered = a.Clone()
	var j int
	for j = 0; j < centered.c; j++ {
		if err = SubtractColumn(centered, j, mean, 0); err != nil {
			return nil, nil, matrixErrorf(opCenterColumns, err)
		}
	}

	return centered, mean, nil
}
