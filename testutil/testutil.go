// Package testutil builds small synthetic symmetric matrices and assembly
// trees for exercising the factorization engine end-to-end, standing in
// for the symbolic-analysis stage spec.md explicitly places out of scope.
package testutil

import (
	"math/rand"

	"multifrontal/front"
)

// ChainMatrix returns a synthetic diagonally-dominant symmetric matrix and
// a matching two-level assembly tree: n independent leaf fronts, each
// owning two rows (one fully-summed, one contributed to a shared root),
// feeding a single root front that owns the remaining row. Useful as a
// minimal but nontrivial multi-front smoke test.
//
// size must be >= 2. The returned aval/tree are consistent: driving
// tree.Run(tree) with Aval=aval reproduces dense Cholesky (or LDLᵀ, with
// posdef=false) of the full size*size matrix.
func ChainMatrix(size int, posdef bool, seed int64) ([]float64, *front.Tree) {
	if size < 2 {
		size = 2
	}
	rnd := rand.New(rand.NewSource(seed))

	nLeaves := size - 1
	tr := front.NewTree(nLeaves + 1)
	root := nLeaves

	var aval []float64
	addEntry := func(v float64) int {
		aval = append(aval, v)
		return len(aval) - 1
	}

	rootDiag := float64(size) * 10
	rootDest := 0
	rootAmap := []front.AmapEntry{
		{Source: addEntry(rootDiag), Dest: rootDest},
	}

	for i := 0; i < nLeaves; i++ {
		leafDiag := float64(size)*4 + rnd.Float64()
		offDiag := rnd.Float64()*2 - 1

		tr.Fronts[i] = front.Front{
			NrowExpected: 2, NcolExpected: 1,
			Rlist:  []int{i, size - 1},
			Posdef: posdef,
			Amap: []front.AmapEntry{
				{Source: addEntry(leafDiag), Dest: 0},
				{Source: addEntry(offDiag), Dest: 1},
			},
		}
		tr.AddChild(root, i)
	}

	tr.Fronts[root] = front.Front{
		NrowExpected: 1, NcolExpected: 1,
		Rlist:  []int{size - 1},
		Posdef: posdef,
		Amap:   rootAmap,
	}
	tr.Root = root

	return aval, tr
}
