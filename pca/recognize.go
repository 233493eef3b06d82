// SPDX-License-Identifier: MIT

package pca

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/eigenface/matrix"
)

// Match is the outcome of one recognition.
type Match struct {
	Index    int     // column of the nearest training image
	Label    string  // label of that image
	Distance float64 // Euclidean distance in eigenspace
	Known    bool    // false when a threshold is set and Distance exceeds it
}

// Recognizer answers nearest-neighbour queries against a Database.
// It is safe for concurrent use once constructed.
type Recognizer struct {
	db   *Database
	opts options
	cols [][]float64 // stored projections, one K-vector per training image
}

// NewRecognizer validates db and caches its projections column by column.
//
// Errors:
//   - ErrCorruptDatabase (see Database.Validate).
func NewRecognizer(db *Database, opts ...Option) (*Recognizer, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}
	r := &Recognizer{db: db, opts: gatherOptions(opts...), cols: make([][]float64, db.Len())}
	var err error
	for j := range r.cols {
		if r.cols[j], err = db.Projected.Column(j); err != nil {
			return nil, fmt.Errorf("pca: recognizer: %w", err)
		}
	}

	return r, nil
}

// Database returns the database the recognizer queries.
func (r *Recognizer) Database() *Database { return r.db }

// Recognize projects image (P×1) and returns the nearest training image.
// Ties resolve to the lowest index.
//
// Errors:
//   - ErrImageShape, ctx.Err(), wrapped kernel errors.
//
// Complexity:
//   - Time O(P·K + N·K).
func (r *Recognizer) Recognize(ctx context.Context, image *matrix.Dense) (Match, error) {
	start := time.Now()
	proj, err := r.db.project(ctx, r.opts.backend, image)
	if err != nil {
		return Match{}, err
	}
	q := proj.RawData() // K×1: the buffer is the coordinate vector

	best, bestDist := 0, math.Inf(1)
	var d float64
	for j, c := range r.cols {
		d = floats.Distance(q, c, 2)
		if d < bestDist {
			best, bestDist = j, d
		}
	}
	m := Match{
		Index:    best,
		Label:    r.db.Labels[best],
		Distance: bestDist,
		Known:    r.opts.threshold <= 0 || bestDist <= r.opts.threshold,
	}
	r.opts.observer.ObserveRecognition(m.Known, m.Distance)
	r.opts.stageDone(StageRecognize, start)
	r.opts.logger.Debug("pca recognition",
		slog.String("label", m.Label),
		slog.Int("index", m.Index),
		slog.Float64("distance", m.Distance),
		slog.Bool("known", m.Known),
	)

	return m, nil
}

// RecognizeBatch recognizes every column of images (P×M) concurrently and
// returns one Match per column, in column order. The first error cancels the
// remaining work.
func (r *Recognizer) RecognizeBatch(ctx context.Context, images *matrix.Dense) ([]Match, error) {
	if images == nil {
		return nil, fmt.Errorf("%w: %w", ErrImageShape, matrix.ErrNilMatrix)
	}
	if images.Rows() != r.db.Pixels() {
		return nil, fmt.Errorf("%w: batch has %d rows, want %d: %w",
			ErrImageShape, images.Rows(), r.db.Pixels(), matrix.ErrDimensionMismatch)
	}
	out := make([]Match, images.Cols())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers)
	for j := range out {
		j := j
		g.Go(func() error {
			col, err := images.SelectColumns([]int{j})
			if err != nil {
				return err
			}
			m, err := r.Recognize(gctx, col)
			if err != nil {
				return fmt.Errorf("pca: image %d: %w", j, err)
			}
			out[j] = m

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
