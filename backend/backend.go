// SPDX-License-Identifier: MIT

// Package backend selects the implementation of the heavy kernels used by the
// PCA pipeline. Every backend honours the contracts of package matrix
// (shapes, orientations, typed errors); only the arithmetic engine differs.
//
//   - Native runs the matrix package kernels, row-partitioned across goroutines.
//   - Gonum delegates to gonum.org/v1/gonum/mat (BLAS multiply, LAPACK dsyev).
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/eigenface/matrix"
)

// Backend names accepted by New.
const (
	NameNative = "native"
	NameGonum  = "gonum"
)

// ErrUnknownBackend is returned by New for a name it does not know.
var ErrUnknownBackend = errors.New("backend: unknown backend")

// Backend is the kernel set the pipeline depends on.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Multiply computes op(a)·op(b); see matrix.Multiply.
	Multiply(ctx context.Context, a *matrix.Dense, ta matrix.Orientation, b *matrix.Dense, tb matrix.Orientation, expectedCols int) (*matrix.Dense, error)
	// SurrogateCovariance computes aᵗa; see matrix.SurrogateCovariance.
	SurrogateCovariance(ctx context.Context, a *matrix.Dense) (*matrix.Dense, error)
	// EigenSymmetric returns eigenvalues and the matching eigenvector columns
	// of a symmetric matrix, in the engine's own order.
	EigenSymmetric(ctx context.Context, m *matrix.Dense) ([]float64, *matrix.Dense, error)
}

// New returns the backend registered under name. workers bounds the
// goroutines of the native kernels (≤ 0 means GOMAXPROCS); eigen options
// apply to the native Jacobi solver.
func New(name string, workers int, eigen ...matrix.EigenOption) (Backend, error) {
	switch name {
	case NameNative, "":
		return &Native{Workers: workers, Eigen: eigen}, nil
	case NameGonum:
		return &Gonum{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
	}
}
