// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the symmetric eigensolver.
// This file defines:
//   - EigenOption (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherEigenOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEigenTolerance is the relative off-diagonal threshold:
	// Jacobi stops once ‖offdiag(A)‖_F ≤ tol·‖A‖_F.
	DefaultEigenTolerance = 1e-12

	// DefaultMaxSweeps caps the number of cyclic Jacobi sweeps. Convergence is
	// quadratic; well-conditioned Gram matrices settle in well under 20.
	DefaultMaxSweeps = 100

	// DefaultSymmetryTolerance is the relative tolerance of the symmetry
	// precondition (scaled by max(1, max|A|)).
	DefaultSymmetryTolerance = 1e-9
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid = "matrix: WithTolerance: tol must be finite and > 0"
	panicSweepsInvalid    = "matrix: WithMaxSweeps: sweeps must be >= 1"
	panicSymmetryInvalid  = "matrix: WithSymmetryTolerance: tol must be finite and >= 0"
)

// EigenOption mutates eigensolver options. Safe to apply repeatedly.
// Constructors MUST panic only on nonsensical values (programmer error).
type EigenOption func(*eigenOptions)

// eigenOptions stores the effective configuration after applying setters.
type eigenOptions struct {
	tol       float64 // > 0; DefaultEigenTolerance
	maxSweeps int     // >= 1; DefaultMaxSweeps
	symTol    float64 // >= 0; DefaultSymmetryTolerance
}

// WithTolerance sets the relative convergence threshold.
// Panics when tol is not a finite positive number.
func WithTolerance(tol float64) EigenOption {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *eigenOptions) { o.tol = tol }
}

// WithMaxSweeps caps the number of cyclic sweeps.
// Panics when sweeps < 1.
func WithMaxSweeps(sweeps int) EigenOption {
	if sweeps < 1 {
		panic(panicSweepsInvalid)
	}

	return func(o *eigenOptions) { o.maxSweeps = sweeps }
}

// WithSymmetryTolerance sets the relative tolerance of the symmetry check.
// Panics when tol is negative or not finite.
func WithSymmetryTolerance(tol float64) EigenOption {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymmetryInvalid)
	}

	return func(o *eigenOptions) { o.symTol = tol }
}

// gatherEigenOptions applies setters on top of the documented defaults
// (last-writer-wins).
func gatherEigenOptions(user ...EigenOption) eigenOptions {
	o := eigenOptions{
		tol:       DefaultEigenTolerance,
		maxSweeps: DefaultMaxSweeps,
		symTol:    DefaultSymmetryTolerance,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
