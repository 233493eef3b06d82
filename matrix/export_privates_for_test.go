// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for the eigensolver options snapshot.
//
// Purpose:
//   - Expose the internal eigenOptions as a read-only snapshot to matrix_test ONLY.
//   - Expose the stable panic messages of the WithX constructors.
//
// Risks & Maintenance:
//   - Keep EigenOptionsSnapshot in sync with eigenOptions fields.

// EigenOptionsSnapshot is a read-only copy of the effective eigensolver options.
type EigenOptionsSnapshot struct {
	Tol       float64
	MaxSweeps int
	SymTol    float64
}

// GatherEigenOptionsSnapshot_TestOnly applies opts over the defaults.
func GatherEigenOptionsSnapshot_TestOnly(opts ...EigenOption) EigenOptionsSnapshot {
	o := gatherEigenOptions(opts...)

	return EigenOptionsSnapshot{Tol: o.tol, MaxSweeps: o.maxSweeps, SymTol: o.symTol}
}

const (
	PanicToleranceInvalid_TestOnly = panicToleranceInvalid
	PanicSweepsInvalid_TestOnly    = panicSweepsInvalid
	PanicSymmetryInvalid_TestOnly  = panicSymmetryInvalid
)
