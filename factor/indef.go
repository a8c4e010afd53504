package factor

import (
	"math"

	"multifrontal/front"
)

// posInf is the sentinel value marking the first D-slot of the second
// column of a 2x2 pivot pair, per spec.md §4.E's interchange protocol.
var posInf = math.Inf(1)

// FactorIndef performs threshold-pivoted LDLᵀ factorization of f's
// fully-summed columns, trying 1x1 then 2x2 candidate pivots in column
// order. Pivots that fail the threshold test are swapped to the back of
// the fully-summed region ("delayed") and are not retried at this front;
// once every remaining column has failed, the sweep stops and the
// delayed columns become f.NdelayOut for the parent to re-attempt.
//
// D is stored inverted in the trailing two rows of each column of f.Lcol
// (ld = f.Nrow+2): a 1x1 pivot at column k stores (1/d, 0); a 2x2 pivot
// over (k, k+1) stores (invD00, invD01) at column k and (+Inf, invD11) at
// column k+1, the infinity marking that column k+1 is the second half of
// a pair. The final [d11 d21 d22] layout is produced by a later pass over
// the whole tree (see tree.RewriteDiagonalSentinels), since FormUpdate
// needs to see the sentinel to know where 2x2 pairs are.
func FactorIndef(f *front.Front, opts Options) error {
	m, n, ld := f.Nrow, f.Ncol, f.LcolRows()
	lcol := f.Lcol
	perm := f.Perm

	dSlot := func(col, i int) *float64 { return &lcol[col*ld+m+i] }
	swapCols := func(a, b int) {
		if a == b {
			return
		}
		ca, cb := lcol[a*ld:a*ld+ld], lcol[b*ld:b*ld+ld]
		for i := range ca {
			ca[i], cb[i] = cb[i], ca[i]
		}
		perm[a], perm[b] = perm[b], perm[a]
	}

	active := n
	k := 0
	for k < active {
		akk := lcol[k*ld+k]
		maxBelow := 0.0
		for i := k + 1; i < m; i++ {
			if v := math.Abs(lcol[k*ld+i]); v > maxBelow {
				maxBelow = v
			}
		}
		if math.Abs(akk) >= opts.Small && maxBelow*opts.U <= math.Abs(akk) {
			eliminate1x1(lcol, ld, m, n, k)
			*dSlot(k, 0) = 1 / akk
			*dSlot(k, 1) = 0
			lcol[k*ld+k] = 1
			k++
			continue
		}

		if k+1 < active && try2x2(lcol, ld, m, n, k, opts) {
			d11, d21, d22 := lcol[k*ld+k], lcol[k*ld+k+1], lcol[(k+1)*ld+k+1]
			det := d11*d22 - d21*d21
			invD00, invD01, invD11 := d22/det, -d21/det, d11/det
			eliminate2x2(lcol, ld, m, n, k, invD00, invD01, invD11)
			*dSlot(k, 0) = invD00
			*dSlot(k, 1) = invD01
			*dSlot(k+1, 0) = posInf
			*dSlot(k+1, 1) = invD11
			lcol[k*ld+k] = 1
			lcol[k*ld+k+1] = 0
			lcol[(k+1)*ld+k+1] = 1
			k += 2
			continue
		}

		active--
		swapCols(k, active)
	}

	f.Nelim = k
	f.NdelayOut = n - k
	return nil
}

// eliminate1x1 scales column k's subdiagonal by 1/a_kk and applies the
// resulting rank-1 Schur update to every later column (both the still
// fully-summed ones and the extra L21 rows beyond n), following the
// GAXPY form: a_ij -= l_ik * a_kk * l_jk = l_ik * a_jk_orig.
func eliminate1x1(lcol []float64, ld, m, n, k int) {
	d := lcol[k*ld+k]
	dinv := 1 / d
	for i := k + 1; i < m; i++ {
		lcol[k*ld+i] *= dinv
	}
	for j := k + 1; j < n; j++ {
		ljk := lcol[k*ld+j]
		if ljk == 0 {
			continue
		}
		for i := j; i < m; i++ {
			lcol[j*ld+i] -= lcol[k*ld+i] * d * ljk
		}
	}
}

// try2x2 reports whether the 2x2 pivot over columns (k, k+1) passes the
// bounded-growth threshold test: for every row i below the pair, the
// multiplier pair produced by applying the pivot's inverse must have
// magnitude at most 1/u.
func try2x2(lcol []float64, ld, m, n, k int, opts Options) bool {
	akk, ak1 := lcol[k*ld+k], lcol[k*ld+k+1]
	ak1k1 := lcol[(k+1)*ld+k+1]
	det := akk*ak1k1 - ak1*ak1
	if math.Abs(det) < opts.Small {
		return false
	}
	invD00, invD01, invD11 := ak1k1/det, -ak1/det, akk/det

	for i := k + 2; i < m; i++ {
		xi, yi := lcol[k*ld+i], lcol[(k+1)*ld+i]
		l1 := invD00*xi + invD01*yi
		l2 := invD01*xi + invD11*yi
		if math.Abs(l1)*opts.U > 1 || math.Abs(l2)*opts.U > 1 {
			return false
		}
	}
	return true
}

// eliminate2x2 applies the rank-2 Schur update for the pivot pair
// (k, k+1) using the original (pre-overwrite) column entries, then
// overwrites columns k and k+1's subdiagonal rows with the computed
// multiplier pairs.
func eliminate2x2(lcol []float64, ld, m, n, k int, invD00, invD01, invD11 float64) {
	rows := m - k - 2
	if rows < 0 {
		rows = 0
	}
	xs := make([]float64, rows)
	ys := make([]float64, rows)
	for idx := 0; idx < rows; idx++ {
		i := k + 2 + idx
		xs[idx] = lcol[k*ld+i]
		ys[idx] = lcol[(k+1)*ld+i]
	}

	for jIdx := 0; jIdx < n-k-2; jIdx++ {
		j := k + 2 + jIdx
		xj, yj := xs[jIdx], ys[jIdx]
		lj1 := invD00*xj + invD01*yj
		lj2 := invD01*xj + invD11*yj
		for iIdx := jIdx; iIdx < rows; iIdx++ {
			i := k + 2 + iIdx
			lcol[j*ld+i] -= xs[iIdx]*lj1 + ys[iIdx]*lj2
		}
	}

	for idx := 0; idx < rows; idx++ {
		i := k + 2 + idx
		lcol[k*ld+i] = invD00*xs[idx] + invD01*ys[idx]
		lcol[(k+1)*ld+i] = invD01*xs[idx] + invD11*ys[idx]
	}
}
