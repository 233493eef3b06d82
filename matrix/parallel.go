// SPDX-License-Identifier: MIT

// Package matrix - data-parallel variants of the heavy kernels.
//
// Output rows are split into disjoint blocks and each block is computed by
// one goroutine of an errgroup. Inputs are only read during the parallel
// phase and every output element has exactly one writer, so no locking is
// involved and results are bitwise equal to the sequential kernels.
// The context is checked before each block starts.
package matrix

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	opMultiplyParallel  = "MultiplyParallel"
	opSurrogateParallel = "SurrogateCovarianceParallel"
)

// blocksPerWorker oversubscribes blocks so uneven rows (the surrogate's
// triangle) still balance across workers.
const blocksPerWorker = 4

// effectiveWorkers maps workers ≤ 0 to GOMAXPROCS.
func effectiveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return workers
}

// forRowBlocks runs fn(r0, r1) over [0, rows) split into blocks on at most
// workers goroutines. The first error (or ctx cancellation) wins.
func forRowBlocks(ctx context.Context, workers, rows int, fn func(r0, r1 int)) error {
	if rows == 0 {
		return ctx.Err()
	}
	workers = effectiveWorkers(workers)
	block := (rows + workers*blocksPerWorker - 1) / (workers * blocksPerWorker)
	if block < 1 {
		block = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var r0 int
	for r0 = 0; r0 < rows; r0 += block {
		lo, hi := r0, min(r0+block, rows)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)

			return nil
		})
	}

	return g.Wait()
}

// MultiplyParallel is Multiply with result rows computed concurrently.
//
// Inputs:
//   - workers: goroutine cap; ≤ 0 means runtime.GOMAXPROCS(0).
//
// Errors:
//   - Same as Multiply, plus ctx.Err() on cancellation.
//
// Complexity:
//   - Time O(r*n*c / workers), Space O(r*c).
func MultiplyParallel(ctx context.Context, workers int, a *Dense, ta Orientation, b *Dense, tb Orientation, expectedCols int) (*Dense, error) {
	p, err := planMultiply(a, ta, b, tb, expectedCols)
	if err != nil {
		return nil, matrixErrorf(opMultiplyParallel, err)
	}
	res := &Dense{r: p.rows, c: p.cols, data: make([]float64, p.rows*p.cols)}
	err = forRowBlocks(ctx, workers, p.rows, func(r0, r1 int) {
		p.rowsInto(res.data, r0, r1)
	})
	if err != nil {
		return nil, matrixErrorf(opMultiplyParallel, err)
	}

	return res, nil
}

// SurrogateCovarianceParallel is SurrogateCovariance with upper-triangle rows
// distributed across goroutines. Row i writes [i][j≥i] and their mirrors
// [j≥i][i]; no two rows touch the same element.
//
// Errors:
//   - ErrNilMatrix, ctx.Err() on cancellation.
func SurrogateCovarianceParallel(ctx context.Context, workers int, a *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSurrogateParallel, err)
	}
	res := &Dense{r: a.c, c: a.c, data: make([]float64, a.c*a.c)}
	err := forRowBlocks(ctx, workers, a.c, func(r0, r1 int) {
		var i int
		for i = r0; i < r1; i++ {
			surrogateRow(a, res.data, i)
		}
	})
	if err != nil {
		return nil, matrixErrorf(opSurrogateParallel, err)
	}

	return res, nil
}
