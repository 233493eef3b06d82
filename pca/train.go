// SPDX-License-Identifier: MIT

package pca

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/katalvlaran/eigenface/matrix"
)

// Train builds a Database from images, one image per column.
//
// Implementation:
//   - Stage 1 (center): mean column and centered copy of images.
//   - Stage 2 (surrogate): L = AᵗA on the backend.
//   - Stage 3 (eigen): eigenpairs of L; sorted descending unless disabled;
//     components with eigenvalue ≤ tol·max are dropped, then capped at k.
//   - Stage 4 (lift): eigenfaces = A·V_k, each column scaled to unit length.
//   - Stage 5 (project): Projected = eigenfacesᵗ·A.
//
// Behavior highlights:
//   - images is not modified.
//   - labels may be nil; image j is then labelled strconv.Itoa(j).
//   - Identical training images leave no variance: K = 0, every projection is
//     empty and every recognition distance is 0.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrEmptyTrainingSet, ErrLabelCount, ctx.Err(), and
//     backend errors wrapped with the stage name. Any error aborts training.
//
// Complexity:
//   - Time O(P·N² + N³), Space O(P·N + N²).
func Train(ctx context.Context, images *matrix.Dense, labels []string, opts ...Option) (*Database, error) {
	o := gatherOptions(opts...)
	if images == nil {
		return nil, fmt.Errorf("pca: train: %w", matrix.ErrNilMatrix)
	}
	pixels, n := images.Shape()
	if n == 0 || pixels == 0 {
		return nil, fmt.Errorf("pca: train %dx%d: %w", pixels, n, ErrEmptyTrainingSet)
	}
	if labels == nil {
		labels = make([]string, n)
		for j := range labels {
			labels[j] = strconv.Itoa(j)
		}
	} else if len(labels) != n {
		return nil, fmt.Errorf("pca: train: %d labels for %d images: %w", len(labels), n, ErrLabelCount)
	}
	start := time.Now()

	t := time.Now()
	centered, mean, err := matrix.CenterColumns(images)
	if err != nil {
		return nil, stageErr(StageCenter, err)
	}
	o.stageDone(StageCenter, t)

	t = time.Now()
	surrogate, err := o.backend.SurrogateCovariance(ctx, centered)
	if err != nil {
		return nil, stageErr(StageSurrogate, err)
	}
	o.stageDone(StageSurrogate, t)

	t = time.Now()
	values, vectors, err := o.backend.EigenSymmetric(ctx, surrogate)
	if err != nil {
		return nil, stageErr(StageEigen, err)
	}
	if o.sortEigen {
		if err = matrix.SortEigenDescending(values, vectors); err != nil {
			return nil, stageErr(StageEigen, err)
		}
	}
	keep := selectComponents(values, o.eigenTol, o.components)
	vk, err := vectors.SelectColumns(keep)
	if err != nil {
		return nil, stageErr(StageEigen, err)
	}
	kept := make([]float64, len(keep))
	for i, j := range keep {
		kept[i] = values[j]
	}
	o.stageDone(StageEigen, t)

	t = time.Now()
	eigenfaces, err := o.backend.Multiply(ctx, centered, matrix.Normal, vk, matrix.Normal, len(keep))
	if err != nil {
		return nil, stageErr(StageLift, err)
	}
	if err = normalizeColumns(eigenfaces); err != nil {
		return nil, stageErr(StageLift, err)
	}
	o.stageDone(StageLift, t)

	t = time.Now()
	projected, err := o.backend.Multiply(ctx, eigenfaces, matrix.Transposed, centered, matrix.Normal, n)
	if err != nil {
		return nil, stageErr(StageProject, err)
	}
	o.stageDone(StageProject, t)

	o.logger.Info("pca training finished",
		slog.String("backend", o.backend.Name()),
		slog.Int("images", n),
		slog.Int("pixels", pixels),
		slog.Int("components", len(keep)),
		slog.Duration("duration", time.Since(start)),
	)

	return &Database{
		Mean:        mean,
		Eigenfaces:  eigenfaces,
		Eigenvalues: kept,
		Projected:   projected,
		Labels:      append([]string(nil), labels...),
	}, nil
}

// selectComponents returns, in their current order, the indices of values
// above tol·max(values), at most limit of them when limit > 0.
func selectComponents(values []float64, tol float64, limit int) []int {
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	keep := make([]int, 0, len(values))
	if maxVal <= 0 {
		return keep
	}
	cut := tol * maxVal
	for j, v := range values {
		if limit > 0 && len(keep) == limit {
			break
		}
		if v > cut {
			keep = append(keep, j)
		}
	}

	return keep
}

// normalizeColumns scales every non-zero column of m to unit length.
func normalizeColumns(m *matrix.Dense) error {
	for j := 0; j < m.Cols(); j++ {
		norm, err := matrix.ColumnNorm(m, j)
		if err != nil {
			return err
		}
		if norm == 0 {
			continue
		}
		if err = matrix.ScaleColumn(m, j, 1/norm); err != nil {
			return err
		}
	}

	return nil
}

func stageErr(stage string, err error) error {
	return fmt.Errorf("pca: %s: %w", stage, err)
}
