// Package factor implements the two dense front factorizations (block
// Cholesky and threshold-pivoted LDLᵀ) and the update former that turns
// eliminated pivots into the parent's contribution block.
//
// The block-Cholesky driver is grounded on the teacher's recursive block
// LU in maths/lu_block.go — same panel/trailing-update shape (factor a
// diagonal block, solve the panel below it, update the trailing
// submatrix) — generalized from LU to Cholesky and reworked to operate
// over the maths package's leading-dimension kernels instead of the
// teacher's Matrix interface, since a front's Lcol is a flat buffer, not
// a boxed matrix type. The indefinite path has no teacher analogue (the
// teacher never pivots); it follows spec.md §4.E directly, grounded on
// the layout described by original_source's factor_cpu.cxx post-pass.
package factor

import "fmt"

// Options configures both factorization paths, per spec.md §6.
type Options struct {
	Small      float64
	U          float64
	PrintLevel int
}

// DefaultOptions returns the documented defaults: Small=1e-20, U=0.01,
// PrintLevel=0 (silent).
func DefaultOptions() Options {
	return Options{Small: 1e-20, U: 0.01, PrintLevel: 0}
}

// Validate rejects U outside (0, 0.5] and non-positive Small.
func (o Options) Validate() error {
	if o.U <= 0 || o.U > 0.5 {
		return fmt.Errorf("factor: U must be in (0, 0.5], got %v", o.U)
	}
	if o.Small <= 0 {
		return fmt.Errorf("factor: Small must be positive, got %v", o.Small)
	}
	return nil
}
