// SPDX-License-Identifier: MIT

package pca

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/katalvlaran/eigenface/backend"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEigenTolerance drops components whose eigenvalue is at or below
	// tol·max(eigenvalues). Centered data always has one null direction, so
	// the cutoff must sit well above Jacobi round-off.
	DefaultEigenTolerance = 1e-10

	// DefaultSortEigen sorts eigenpairs by descending eigenvalue before lifting.
	DefaultSortEigen = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicBackendNil      = "pca: WithBackend: backend must be non-nil"
	panicComponentsNeg   = "pca: WithComponents: k must be >= 0"
	panicToleranceBad    = "pca: WithEigenTolerance: tol must be finite and >= 0"
	panicThresholdBad    = "pca: WithThreshold: threshold must be finite and >= 0"
	panicLoggerNil       = "pca: WithLogger: logger must be non-nil"
	panicObserverNil     = "pca: WithObserver: observer must be non-nil"
	panicWorkersNegative = "pca: WithWorkers: workers must be >= 0"
)

// Option configures Train and NewRecognizer. Constructors panic only on
// nonsensical values (programmer error).
type Option func(*options)

type options struct {
	backend    backend.Backend
	components int     // 0 = keep every component above tolerance
	sortEigen  bool    // DefaultSortEigen
	eigenTol   float64 // DefaultEigenTolerance
	threshold  float64 // 0 = every nearest match is known
	workers    int     // RecognizeBatch fan-out; 0 = GOMAXPROCS
	logger     *slog.Logger
	observer   Observer
}

// WithBackend selects the kernel backend (default: native, GOMAXPROCS workers).
func WithBackend(b backend.Backend) Option {
	if b == nil {
		panic(panicBackendNil)
	}

	return func(o *options) { o.backend = b }
}

// WithComponents caps the number of eigenfaces kept; 0 keeps all that pass
// the eigenvalue tolerance.
func WithComponents(k int) Option {
	if k < 0 {
		panic(panicComponentsNeg)
	}

	return func(o *options) { o.components = k }
}

// WithSortEigen toggles sorting of eigenpairs by descending eigenvalue.
// With sorting off, components keep the eigensolver's order and
// WithComponents keeps the first k of that order.
func WithSortEigen(on bool) Option {
	return func(o *options) { o.sortEigen = on }
}

// WithEigenTolerance sets the relative eigenvalue cutoff.
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceBad)
	}

	return func(o *options) { o.eigenTol = tol }
}

// WithThreshold sets the recognition distance above which a match is
// reported as unknown; 0 disables rejection.
func WithThreshold(threshold float64) Option {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		panic(panicThresholdBad)
	}

	return func(o *options) { o.threshold = threshold }
}

// WithWorkers bounds the goroutines of RecognizeBatch; 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithObserver sets the metrics sink (default NopObserver).
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserverNil)
	}

	return func(o *options) { o.observer = obs }
}

// gatherOptions applies setters on top of the documented defaults
// (last-writer-wins).
func gatherOptions(user ...Option) options {
	o := options{
		sortEigen: DefaultSortEigen,
		eigenTol:  DefaultEigenTolerance,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.backend == nil {
		o.backend = &backend.Native{}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}

	return o
}

// stageDone reports one finished stage to the observer and the debug log.
func (o *options) stageDone(stage string, start time.Time) {
	d := time.Since(start)
	o.observer.ObserveStage(stage, d)
	o.logger.Debug("pca stage finished", slog.String("stage", stage), slog.Duration("duration", d))
}
