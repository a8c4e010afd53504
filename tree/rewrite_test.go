package tree

import (
	"math"
	"testing"

	"multifrontal/front"
)

func TestRewriteDiagonalSentinelsRecovers2x2Pivot(t *testing.T) {
	// Original pivot pair: D = [[7, 1000], [1000, 1e-6]]. Its inverse is
	// what FactorIndef would have left behind, tagged with the +Inf
	// sentinel at the second column.
	d11, d21, d22 := 7.0, 1000.0, 1e-6
	det := d11*d22 - d21*d21
	invD00, invD01, invD11 := d22/det, -d21/det, d11/det

	ld := 4 // m=2, +2 D rows
	lcol := make([]float64, ld*2)
	lcol[0*ld+2] = invD00
	lcol[0*ld+3] = invD01
	lcol[1*ld+2] = math.Inf(1)
	lcol[1*ld+3] = invD11

	f := front.Front{NrowExpected: 2, NcolExpected: 2, Nrow: 2, Ncol: 2, Posdef: false, Lcol: lcol, Nelim: 2}
	tr := &front.Tree{Fronts: []front.Front{f}, Root: 0}

	RewriteDiagonalSentinels(tr)

	got := &tr.Fronts[0]
	gotD11 := got.Lcol[0*ld+2]
	gotD21a := got.Lcol[0*ld+3]
	gotD21b := got.Lcol[1*ld+2]
	gotD22 := got.Lcol[1*ld+3]

	const tol = 1e-6
	if math.Abs(gotD11-d11) > tol {
		t.Fatalf("d11 = %v, want %v", gotD11, d11)
	}
	if math.Abs(gotD21a-d21) > tol || math.Abs(gotD21b-d21) > tol {
		t.Fatalf("d21 = %v / %v, want %v", gotD21a, gotD21b, d21)
	}
	if math.Abs(gotD22-d22) > tol*d22 {
		t.Fatalf("d22 = %v, want %v", gotD22, d22)
	}
}

func TestRewriteDiagonalSentinelsRecovers1x1Pivot(t *testing.T) {
	d := 4.0
	ld := 3 // m=1, +2 D rows
	lcol := make([]float64, ld)
	lcol[0*ld+1] = 1 / d

	f := front.Front{NrowExpected: 1, NcolExpected: 1, Nrow: 1, Ncol: 1, Posdef: false, Lcol: lcol, Nelim: 1}
	tr := &front.Tree{Fronts: []front.Front{f}, Root: 0}

	RewriteDiagonalSentinels(tr)

	if got := tr.Fronts[0].Lcol[0*ld+1]; math.Abs(got-d) > 1e-12 {
		t.Fatalf("d = %v, want %v", got, d)
	}
	if got := tr.Fronts[0].Lcol[0*ld+2]; got != 0 {
		t.Fatalf("second D slot = %v, want 0", got)
	}
}

func TestRewriteDiagonalSentinelsSkipsPosdefFronts(t *testing.T) {
	f := front.Front{NrowExpected: 1, NcolExpected: 1, Nrow: 1, Ncol: 1, Posdef: true, Lcol: []float64{2}, Nelim: 1}
	tr := &front.Tree{Fronts: []front.Front{f}, Root: 0}
	RewriteDiagonalSentinels(tr) // must not panic or touch lcol out of range
	if tr.Fronts[0].Lcol[0] != 2 {
		t.Fatalf("posdef front was mutated unexpectedly")
	}
}
