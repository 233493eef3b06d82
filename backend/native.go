// SPDX-License-Identifier: MIT

package backend

import (
	"context"

	"github.com/katalvlaran/eigenface/matrix"
)

// Native runs the matrix package kernels.
// Workers == 1 selects the sequential kernels; any other value the
// row-partitioned parallel ones.
type Native struct {
	Workers int
	Eigen   []matrix.EigenOption
}

var _ Backend = (*Native)(nil)

// Name implements Backend.
func (n *Native) Name() string { return NameNative }

// Multiply implements Backend.
func (n *Native) Multiply(ctx context.Context, a *matrix.Dense, ta matrix.Orientation, b *matrix.Dense, tb matrix.Orientation, expectedCols int) (*matrix.Dense, error) {
	if n.Workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return matrix.Multiply(a, ta, b, tb, expectedCols)
	}

	return matrix.MultiplyParallel(ctx, n.Workers, a, ta, b, tb, expectedCols)
}

// SurrogateCovariance implements Backend.
func (n *Native) SurrogateCovariance(ctx context.Context, a *matrix.Dense) (*matrix.Dense, error) {
	if n.Workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return matrix.SurrogateCovariance(a)
	}

	return matrix.SurrogateCovarianceParallel(ctx, n.Workers, a)
}

// EigenSymmetric implements Backend with cyclic Jacobi.
func (n *Native) EigenSymmetric(ctx context.Context, m *matrix.Dense) ([]float64, *matrix.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	return matrix.EigenSym(m, n.Eigen...)
}
