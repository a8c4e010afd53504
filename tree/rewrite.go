package tree

import (
	"math"

	"multifrontal/front"
)

// RewriteDiagonalSentinels walks every indefinite front in t and replaces
// FactorIndef's inverted, infinity-sentinel-tagged D storage (see
// factor/indef.go's doc comment) with the literal [d11, d21, d22] values a
// caller solving against the factorization actually needs. It is run once
// over the whole tree after the post-order sweep completes, rather than
// per node, since nothing downstream of FactorIndef within the sweep
// itself (FormUpdate) needs the literal values — only the final solve
// does.
func RewriteDiagonalSentinels(t *front.Tree) {
	for i := range t.Fronts {
		f := &t.Fronts[i]
		if f.Posdef {
			continue
		}
		rewriteFront(f)
	}
}

func rewriteFront(f *front.Front) {
	ld := f.LcolRows()
	m := f.Nrow
	lcol := f.Lcol

	// A manual index (rather than a ranged for loop) is required here:
	// processing a 2x2 pair overwrites column k+1's infinity sentinel as
	// part of writing its final d22, so the loop must skip over k+1
	// explicitly instead of re-discovering it on the next iteration.
	for k := 0; k < f.Nelim; {
		d0 := lcol[k*ld+m]
		d1 := lcol[k*ld+m+1]

		if k+1 < f.Nelim && math.IsInf(lcol[(k+1)*ld+m], 1) {
			invD00, invD01, invD11 := d0, d1, lcol[(k+1)*ld+m+1]
			detInv := invD00*invD11 - invD01*invD01
			d11 := invD11 / detInv
			d21 := -invD01 / detInv
			d22 := invD00 / detInv
			lcol[k*ld+m] = d11
			lcol[k*ld+m+1] = d21
			lcol[(k+1)*ld+m] = d21
			lcol[(k+1)*ld+m+1] = d22
			k += 2
			continue
		}

		// 1x1 pivot: d0 currently holds 1/d.
		lcol[k*ld+m] = 1 / d0
		lcol[k*ld+m+1] = 0
		k++
	}
}
