package factor

import (
	"math"

	"multifrontal/front"
	"multifrontal/maths"
)

// FormUpdate computes the Schur complement contribution block for f from
// its just-factorized fully-summed columns, per spec.md §4.F. It is a
// no-op when f has no contribution rows or nothing was eliminated.
//
// Posdef path: contrib -= L21 * L21^T, a direct application of
// maths.SyrkLowerSub over the eliminated columns.
//
// Indefinite path: contrib -= L21 * (L21*D)^T. FactorIndef leaves D
// stored inverted (see factor/indef.go's doc comment); D itself is
// recovered by inverting the stored slots back (1x1: 1/d; 2x2: invert the
// stored Dinv block via its determinant) before materializing an explicit
// LD block column by column, splitting on whether each eliminated column
// is the first or second half of a 2x2 pivot.
func FormUpdate(f *front.Front) {
	extra := f.ContribDim()
	if extra <= 0 || f.Nelim == 0 {
		return
	}

	// Contribution rows always start at f.Ncol, not f.Nelim: any columns
	// FactorIndef delayed sit between the Nelim eliminated columns and the
	// first contribution row, so slicing at f.Ncol (rather than f.Nelim)
	// is what keeps l21's column-major stride ld correct for every column
	// 0..Nelim-1.
	ld := f.LcolRows()
	l21 := f.Lcol[f.Ncol:]

	if f.Posdef {
		maths.SyrkLowerSub(f.Contrib, extra, extra, f.Nelim, l21, ld)
		return
	}

	ldBlock := make([]float64, extra*f.Nelim)
	m := f.Nrow
	for k := 0; k < f.Nelim; k++ {
		d0 := f.Lcol[k*ld+m]
		d1 := f.Lcol[k*ld+m+1]

		if math.IsInf(d0, 1) {
			// Second half of a 2x2 pivot: paired column is k-1, whose
			// D-slot holds (invD00, invD01); this column's holds
			// (+Inf, invD11). Stored values are D^-1, so invert the 2x2
			// block back to D before forming LD (factor_cpu.cxx:355-357).
			invD00 := f.Lcol[(k-1)*ld+m]
			invD01 := f.Lcol[(k-1)*ld+m+1]
			invD11 := d1
			det := invD00*invD11 - invD01*invD01
			d01 := -invD01 / det
			d11 := invD00 / det
			for i := 0; i < extra; i++ {
				l0 := f.Lcol[(k-1)*ld+f.Ncol+i]
				l1 := f.Lcol[k*ld+f.Ncol+i]
				ldBlock[k*extra+i] = l0*d01 + l1*d11
			}
			continue
		}

		if k+1 < f.Nelim && math.IsInf(f.Lcol[(k+1)*ld+m], 1) {
			// First half of a 2x2 pivot: this column's D-slot holds
			// (invD00, invD01); the paired column k+1 holds (+Inf, invD11).
			invD00, invD01 := d0, d1
			invD11 := f.Lcol[(k+1)*ld+m+1]
			det := invD00*invD11 - invD01*invD01
			d00 := invD11 / det
			d01 := -invD01 / det
			for i := 0; i < extra; i++ {
				l0 := f.Lcol[k*ld+f.Ncol+i]
				l1 := f.Lcol[(k+1)*ld+f.Ncol+i]
				ldBlock[k*extra+i] = l0*d00 + l1*d01
			}
			continue
		}

		// 1x1 pivot: d0 is stored as 1/akk, so the real pivot is 1/d0;
		// d1 is always 0.
		d := 1 / d0
		for i := 0; i < extra; i++ {
			ldBlock[k*extra+i] = f.Lcol[k*ld+f.Ncol+i] * d
		}
	}

	maths.GemmSub(f.Contrib, extra, extra, extra, f.Nelim, l21, ld, ldBlock, extra)
}
