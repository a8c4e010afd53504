package tree

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"multifrontal/factor"
	"multifrontal/front"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// TestRunTwoNodeTreeAssemblesFactorsAndFormsUpdate builds:
//
//	A = [[10,0,0],[0,5,1],[0,1,3]]  (rows/cols 0,1,2)
//
// with a child front owning row 1 (contributing to row 2) and a parent
// front owning rows 0 and 2, and checks the full assemble/factor/update
// pipeline reproduces the expected fold and Cholesky factors.
func TestRunTwoNodeTreeAssemblesFactorsAndFormsUpdate(t *testing.T) {
	aval := []float64{5, 1, 10, 3} // A[1][1], A[2][1], A[0][0], A[2][2]

	tr := front.NewTree(2)
	const child, parent = 0, 1

	tr.Fronts[child] = front.Front{
		NrowExpected: 2, NcolExpected: 1,
		Rlist:  []int{1, 2},
		Posdef: true,
		Amap: []front.AmapEntry{
			{Source: 0, Dest: 0},
			{Source: 1, Dest: 1},
		},
	}
	tr.Fronts[parent] = front.Front{
		NrowExpected: 2, NcolExpected: 2,
		Rlist:  []int{0, 2},
		Posdef: true,
		Amap: []front.AmapEntry{
			{Source: 2, Dest: 0},
			{Source: 3, Dest: 3},
		},
	}
	tr.AddChild(parent, child)
	tr.Root = parent

	d := NewDriver(aval, nil, factor.DefaultOptions())
	s, err := d.Run(tr)
	require.NoError(t, err)
	require.Zero(t, s.Flag)

	c := &tr.Fronts[child]
	require.Equal(t, 1, c.Nelim)
	require.Equal(t, 0, c.NdelayOut)

	p := &tr.Fronts[parent]
	require.Equal(t, 2, p.Nelim)
	require.Equal(t, 0, p.NdelayOut)

	ld := p.LcolRows()
	l00 := p.Lcol[0*ld+0]
	l11 := p.Lcol[1*ld+1]
	require.True(t, approxEqual(l00*l00, 10, 1e-9), "l00^2 = %v want 10", l00*l00)
	// Expected (1,1) entry after fold: A[2][2] + child's contribution
	// (-1/5, the Schur complement of eliminating row 1 out of [[5,1],[1,3]]
	// down to 3 - 1*1/5 = 2.8).
	require.True(t, approxEqual(l11*l11, 2.8, 1e-9), "l11^2 = %v want 2.8", l11*l11)
}

// TestRunDelayedColumnPropagatesToParent builds a two-node indefinite tree
// where the child's single fully-summed column fails both the 1x1 and
// (trivial, single-column) 2x2 pivot tests, forcing it to delay to the
// parent, and checks the delay is correctly folded into the parent's
// fully-summed block and eliminated there.
func TestRunDelayedColumnPropagatesToParent(t *testing.T) {
	// Child: single fully-summed column (row 5) with a huge off-diagonal
	// entry against its one extra row (row 9), so the diagonal pivot test
	// fails outright (no second column available for a 2x2 pivot).
	aval := []float64{1e-6, 1000, 7}
	// aval[0]: A[5][5] (tiny), aval[1]: A[9][5] (huge off-diagonal),
	// aval[2]: A[9][9] (parent's own fully-summed entry).

	tr := front.NewTree(2)
	const child, parent = 0, 1

	tr.Fronts[child] = front.Front{
		NrowExpected: 2, NcolExpected: 1,
		Rlist:  []int{5, 9},
		Posdef: false,
		Amap: []front.AmapEntry{
			{Source: 0, Dest: 0},
			{Source: 1, Dest: 1},
		},
	}
	tr.Fronts[parent] = front.Front{
		NrowExpected: 1, NcolExpected: 1,
		Rlist:  []int{9},
		Posdef: false,
		Amap: []front.AmapEntry{
			{Source: 2, Dest: 0},
		},
	}
	tr.AddChild(parent, child)
	tr.Root = parent

	d := NewDriver(aval, nil, factor.DefaultOptions())
	s, err := d.Run(tr)
	require.NoError(t, err)

	c := &tr.Fronts[child]
	require.Equal(t, 0, c.Nelim)
	require.Equal(t, 1, c.NdelayOut)
	require.Equal(t, 1, s.NumDelayedTotal)

	p := &tr.Fronts[parent]
	// Parent now has 2 fully-summed columns: its own row 9 plus the
	// delayed row 5.
	require.Equal(t, 2, p.Ncol)
	require.Equal(t, 2, p.Nrow)
	require.Equal(t, 2, p.Nelim+p.NdelayOut)
}

// TestRunParallelOnIndependentForestAggregatesStats builds two
// single-node, unrelated roots (a degenerate forest) and checks
// RunParallel completes without error and aggregates per-root stats.
func TestRunParallelOnIndependentForestAggregatesStats(t *testing.T) {
	aval := []float64{4, 9}

	tr := front.NewTree(2)
	tr.Fronts[0] = front.Front{
		NrowExpected: 1, NcolExpected: 1,
		Rlist: []int{0}, Posdef: true,
		Amap: []front.AmapEntry{{Source: 0, Dest: 0}},
	}
	tr.Fronts[1] = front.Front{
		NrowExpected: 1, NcolExpected: 1,
		Rlist: []int{1}, Posdef: true,
		Amap: []front.AmapEntry{{Source: 1, Dest: 0}},
	}
	tr.Root = 0

	d := NewDriver(aval, nil, factor.DefaultOptions())
	s, err := d.RunParallel(context.Background(), tr, 2)
	require.NoError(t, err)
	require.Zero(t, s.NumDelayedTotal)
}
