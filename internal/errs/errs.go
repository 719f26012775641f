// Package errs defines the three error classes the core analysis
// pipeline distinguishes, per spec.md §7. No error is recovered inside
// the core; everything here is surfaced to the caller (CLI exit codes,
// batch skip/continue decisions).
package errs

import "fmt"

// InputError marks a problem with the caller-supplied PointCloud or
// Config: empty point cloud, NaN/Inf coordinates, or S <= 0.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "input error: " + e.Msg }

// NewInput builds an InputError with a formatted message.
func NewInput(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// GridTooLarge marks a computed grid whose Nx*Ny*Nz exceeds the
// implementation-configured cap, guarding against runaway allocations
// on pathological inputs.
type GridTooLarge struct {
	Nx, Ny, Nz int
	Cap        int64
}

func (e *GridTooLarge) Error() string {
	return fmt.Sprintf("grid too large: %d x %d x %d voxels exceeds cap %d", e.Nx, e.Ny, e.Nz, e.Cap)
}

// Internal marks an invariant violation: a bug, not a recoverable
// condition. It should never surface in a correct run.
type Internal struct {
	Msg string
}

func (e *Internal) Error() string { return "internal error: " + e.Msg }

// NewInternal builds an Internal error with a formatted message.
func NewInternal(format string, args ...any) error {
	return &Internal{Msg: fmt.Sprintf(format, args...)}
}
