// Package ssidserr collects the error taxonomy shared by the factor and
// tree packages. Allocator-specific sentinels (outstanding allocation on
// teardown, LIFO violation, oversized request) live alongside their
// allocator in package alloc, following the teacher's convention of
// package-local errors (see maths/lu_block.go); this package holds only
// the factorization-result error that callers need to inspect
// structurally rather than by string match.
package ssidserr

import (
	"errors"
	"fmt"
)

// NotPositiveDefinite reports that the posdef factorization path found a
// non-positive diagonal at the given 1-based column of the front being
// factorized. The overall factorization aborts when this occurs.
type NotPositiveDefinite struct {
	Column int
}

func (e *NotPositiveDefinite) Error() string {
	return fmt.Sprintf("ssids: matrix is not positive definite at column %d", e.Column)
}

// IsNotPositiveDefinite reports whether err is (or wraps) a
// *NotPositiveDefinite, and returns its column if so.
func IsNotPositiveDefinite(err error) (int, bool) {
	var npd *NotPositiveDefinite
	if !errors.As(err, &npd) {
		return 0, false
	}
	return npd.Column, true
}
