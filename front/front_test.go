package front

import "testing"

// buildChain builds a 3-node chain: root <- mid <- leaf, added as children
// in the order mid-then-leaf (a single child per level, so order is
// unambiguous).
func buildChain() *Tree {
	t := NewTree(3)
	t.Root = 0
	t.AddChild(0, 1)
	t.AddChild(1, 2)
	return t
}

func TestPostOrderVisitsChildrenBeforeParent(t *testing.T) {
	tr := buildChain()
	order := tr.PostOrder()
	if len(order) != 3 {
		t.Fatalf("got %d nodes, want 3", len(order))
	}
	pos := map[int]int{}
	for i, n := range order {
		pos[n] = i
	}
	if pos[2] > pos[1] || pos[1] > pos[0] {
		t.Fatalf("expected order 2,1,0 (leaf to root), got %v", order)
	}
}

func TestPostOrderRespectsChildListOrder(t *testing.T) {
	tr := NewTree(4)
	tr.Root = 0
	tr.AddChild(0, 1)
	tr.AddChild(0, 2)
	tr.AddChild(0, 3)
	order := tr.PostOrder()
	// AddChild prepends, so FirstChild order is 3,2,1; PostOrder should
	// visit children in that same list order, parent last.
	want := []int{3, 2, 1, 0}
	for i, n := range want {
		if order[i] != n {
			t.Fatalf("index %d: got %d want %d (full order %v)", i, order[i], n, order)
		}
	}
}

func TestParityAlternatesWithDepth(t *testing.T) {
	tr := buildChain()
	if tr.Fronts[0].Parity() != 0 {
		t.Fatalf("root parity should be 0")
	}
	if tr.Fronts[1].Parity() != 1 {
		t.Fatalf("depth-1 parity should be 1")
	}
	if tr.Fronts[2].Parity() != 0 {
		t.Fatalf("depth-2 parity should be 0")
	}
}

func TestLcolRowsAccountsForIndefDiagonalStorage(t *testing.T) {
	f := Front{Nrow: 5, Posdef: true}
	if f.LcolRows() != 5 {
		t.Fatalf("posdef LcolRows got %d want 5", f.LcolRows())
	}
	f.Posdef = false
	if f.LcolRows() != 7 {
		t.Fatalf("indef LcolRows got %d want 7", f.LcolRows())
	}
}
