// Package maths provides the small set of dense linear-algebra kernels the
// factorizer needs over raw, column-major buffers. It is the direct
// descendant of the teacher repository's block-LU helpers
// (solveLowerTriangular/solveUpperTriangular/matrixMultiplySubtract in
// lu_block.go): the same triangular-solve-then-Schur-update shape, adapted
// to operate on leading-dimension-addressed slices instead of a Matrix
// interface, since fronts are stored as flat []float64 buffers handed out
// by the buddy allocator.
package maths

import "math"

// Epsilon is a pivot-magnitude constant exported for callers. The kernels
// below do not consult it: CholeskyUnblocked rejects only non-positive
// diagonals.
const Epsilon = 1e-300

// Abs returns the absolute value of v.
func Abs(v float64) float64 {
	return math.Abs(v)
}

// at returns the linear index of (row, col) in a column-major buffer with
// leading dimension ld.
func at(row, col, ld int) int {
	return col*ld + row
}

// CholeskyUnblocked factors the n*n symmetric positive definite block
// stored at a (leading dimension lda, lower triangle significant) into its
// lower Cholesky factor in place. Returns the 1-based column at which a
// non-positive diagonal was encountered, or 0 on success.
func CholeskyUnblocked(a []float64, lda, n int) int {
	for k := 0; k < n; k++ {
		akk := a[at(k, k, lda)]
		if akk <= 0 {
			return k + 1
		}
		lkk := math.Sqrt(akk)
		a[at(k, k, lda)] = lkk
		for i := k + 1; i < n; i++ {
			a[at(i, k, lda)] /= lkk
		}
		for j := k + 1; j < n; j++ {
			ljk := a[at(j, k, lda)]
			if ljk == 0 {
				continue
			}
			for i := j; i < n; i++ {
				a[at(i, j, lda)] -= a[at(i, k, lda)] * ljk
			}
		}
	}
	return 0
}

// TrsmRightLowerTranspose solves X * L^T = A for X, where L is the n*n unit
// lower... (here, non-unit) lower-triangular factor produced by
// CholeskyUnblocked, stored at l/ldl, and A is the m*n panel stored at
// a/lda. The result overwrites a in place.
//
// This mirrors the teacher's solveUpperTriangular (solve X*U=B by columns,
// back-substituting on the already-computed entries of X) with the roles
// of rows/columns swapped for the transpose and a non-unit diagonal.
func TrsmRightLowerTranspose(a []float64, lda, m, n int, l []float64, ldl int) {
	for j := 0; j < n; j++ {
		ljj := l[at(j, j, ldl)]
		for i := 0; i < m; i++ {
			sum := a[at(i, j, lda)]
			for k := 0; k < j; k++ {
				sum -= a[at(i, k, lda)] * l[at(j, k, ldl)]
			}
			a[at(i, j, lda)] = sum / ljj
		}
	}
}

// SyrkLowerSub applies C[lower] -= A * A^T to the n*n lower triangle of C
// (leading dimension ldc), where A is n*k (leading dimension lda).
//
// Adapted from the teacher's matrixMultiplySubtract, restricted to the
// lower triangle since the front's trailing Schur complement is symmetric
// and only the lower half is ever populated.
func SyrkLowerSub(c []float64, ldc, n, k int, a []float64, lda int) {
	for j := 0; j < n; j++ {
		for p := 0; p < k; p++ {
			ajp := a[at(j, p, lda)]
			if ajp == 0 {
				continue
			}
			for i := j; i < n; i++ {
				c[at(i, j, ldc)] -= a[at(i, p, lda)] * ajp
			}
		}
	}
}

// GemmSub applies C -= A * B^T to the full m*n block C (leading dimension
// ldc), where A is m*k (leading dimension lda) and B is n*k (leading
// dimension ldb). Used by the indefinite update former, where the result
// is not symmetric in the general case of mismatched row/column lists.
//
// Adapted from the teacher's matrixMultiplySubtract (same accumulate-and-
// subtract shape as the block-LU Schur complement update).
func GemmSub(c []float64, ldc, m, n, k int, a []float64, lda int, b []float64, ldb int) {
	for j := 0; j < n; j++ {
		for p := 0; p < k; p++ {
			bjp := b[at(j, p, ldb)]
			if bjp == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				c[at(i, j, ldc)] -= a[at(i, p, lda)] * bjp
			}
		}
	}
}
