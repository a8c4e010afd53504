// Package tree drives one full sparse factorization: a post-order sweep
// of Assemble -> Factorize -> FormUpdate over an assembly tree, followed
// by the tree-wide diagonal-layout rewrite pass that turns the indefinite
// factorizer's inverted, sentinel-tagged D storage into literal D values.
//
// Grounded on spec.md §4.G and, for the sequential/parallel split, on
// factor_cpu.cxx's top-level factorize_subtree loop in original_source
// (sequential post-order sweep, single final diagonal rewrite pass run
// once after the whole tree rather than per node). The teacher has no
// tree-sweep analogue; RunParallel's errgroup fan-out follows the pattern
// used elsewhere in the example pack for bounded worker-pool concurrency.
package tree

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"multifrontal/alloc"
	"multifrontal/assemble"
	"multifrontal/diag"
	"multifrontal/factor"
	"multifrontal/front"
	"multifrontal/ssidserr"
	"multifrontal/stats"
)

// Driver owns the shared, read-only inputs to a factorization: the
// original matrix entries, optional scaling, and the options governing
// pivoting. Each Run/RunParallel call allocates its own allocator and
// scratch state, so a single Driver may be reused across multiple trees.
type Driver struct {
	Aval    []float64
	Scaling []float64
	Opts    factor.Options
	Logger  *zap.SugaredLogger
}

// NewDriver constructs a Driver with a logger derived from opts.PrintLevel.
func NewDriver(aval, scaling []float64, opts factor.Options) *Driver {
	return &Driver{
		Aval:    aval,
		Scaling: scaling,
		Opts:    opts,
		Logger:  diag.NewLogger(opts.PrintLevel),
	}
}

// Run sweeps t in post-order, assembling, factorizing, and forming the
// update for every node in turn, then rewrites the indefinite diagonal
// sentinels across the whole tree. It aborts as soon as any node reports
// *ssidserr.NotPositiveDefinite.
func (d *Driver) Run(t *front.Tree) (stats.Stats, error) {
	start := time.Now()
	s := stats.New()

	allocEstimate := 0
	for i := range t.Fronts {
		allocEstimate += t.Fronts[i].NrowExpected * t.Fronts[i].NrowExpected
	}
	alc := alloc.NewFactorAllocator(maxInt(allocEstimate, 4096))
	stk := alloc.NewStack(4096)

	maxRow := 0
	for i := range t.Fronts {
		for _, r := range t.Fronts[i].Rlist {
			if r > maxRow {
				maxRow = r
			}
		}
	}
	mp := make([]int, maxRow+1)

	order := t.PostOrder()
	if err := d.sweep(t, order, mp, alc, stk, &s); err != nil {
		return s, err
	}

	RewriteDiagonalSentinels(t)
	s.Elapsed = time.Since(start)
	return s, nil
}

// RunParallel processes the independent subtrees rooted at t's top-level
// forest concurrently, up to workers goroutines, falling back to
// sequential Run when there is only one root or workers <= 1. It never
// splits a single root's internal post-order sweep across goroutines, so
// the ordering guarantee within each subtree is unaffected.
func (d *Driver) RunParallel(ctx context.Context, t *front.Tree, workers int) (stats.Stats, error) {
	roots := topLevelRoots(t)
	if workers <= 1 || len(roots) <= 1 {
		return d.Run(t)
	}

	start := time.Now()
	total := stats.New()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]stats.Stats, len(roots))
	for idx, root := range roots {
		idx, root := idx, root
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			sub, ids := subtreeOf(t, root)
			subDriver := &Driver{Aval: d.Aval, Scaling: d.Scaling, Opts: d.Opts, Logger: d.Logger}
			res, err := subDriver.Run(sub)
			if err != nil {
				return err
			}
			// sub.Fronts holds the factorized state; copy each node's
			// populated fields back into t under its original id (not
			// Parent/FirstChild/NextSibling, which are t's own and were
			// only renumbered for sub's local space) so callers reading
			// t after RunParallel see what Run would have produced.
			for i, origID := range ids {
				local := sub.Fronts[i]
				orig := &t.Fronts[origID]
				orig.NdelayIn = local.NdelayIn
				orig.Nrow = local.Nrow
				orig.Ncol = local.Ncol
				orig.Lcol = local.Lcol
				orig.Perm = local.Perm
				orig.Contrib = local.Contrib
				orig.Nelim = local.Nelim
				orig.NdelayOut = local.NdelayOut
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}

	for _, res := range results {
		total.NumDelayedTotal += res.NumDelayedTotal
		if res.MaxFrontSize > total.MaxFrontSize {
			total.MaxFrontSize = res.MaxFrontSize
		}
	}
	total.Elapsed = time.Since(start)
	return total, nil
}

// sweep runs Assemble -> FactorPosdef/FactorIndef -> FormUpdate over order
// (a post-order node-id sequence local to t), accumulating s and
// returning the first NotPositiveDefinite encountered.
func (d *Driver) sweep(t *front.Tree, order []int, mp []int, alc front.Allocator, stk *alloc.Stack, s *stats.Stats) error {
	for _, id := range order {
		node := &t.Fronts[id]
		children := childFronts(t, id)

		if err := assemble.Assemble(node, children, mp, d.Aval, d.Scaling, alc, stk); err != nil {
			return fmt.Errorf("tree: assembling node %d: %w", id, err)
		}

		var err error
		if node.Posdef {
			err = factor.FactorPosdef(node)
		} else {
			err = factor.FactorIndef(node, d.Opts)
		}
		if err != nil {
			if col, ok := ssidserr.IsNotPositiveDefinite(err); ok {
				s.Fail(col)
			}
			return fmt.Errorf("tree: factorizing node %d: %w", id, err)
		}

		factor.FormUpdate(node)
		s.Accumulate(node.NdelayOut, node.Nrow)

		if d.Opts.PrintLevel > 0 {
			d.Logger.Infow("front factorized",
				"node", id, "nelim", node.Nelim, "ndelay_in", node.NdelayIn,
				"ndelay_out", node.NdelayOut, "nrow", node.Nrow, "ncol", node.Ncol)
		}
	}
	return nil
}

func childFronts(t *front.Tree, node int) []*front.Front {
	ids := t.Children(node)
	out := make([]*front.Front, len(ids))
	for i, id := range ids {
		out[i] = &t.Fronts[id]
	}
	return out
}

// topLevelRoots returns every node whose Parent is front.NoNode: for a
// forest produced by symbolic analysis of a reducible matrix, this may be
// more than one node even though t.Root names a single canonical root.
func topLevelRoots(t *front.Tree) []int {
	var roots []int
	for i := range t.Fronts {
		if t.Fronts[i].Parent == front.NoNode {
			roots = append(roots, i)
		}
	}
	return roots
}

// subtreeOf builds a standalone Tree containing exactly root's subtree,
// renumbered to a dense local id space, for independent parallel
// processing by RunParallel. The returned ids slice maps each local id i
// back to its id in t, so the caller can copy factorization results back
// once the subtree has been run.
func subtreeOf(t *front.Tree, root int) (*front.Tree, []int) {
	var ids []int
	var collect func(int)
	collect = func(n int) {
		ids = append(ids, n)
		for _, c := range t.Children(n) {
			collect(c)
		}
	}
	collect(root)

	localOf := make(map[int]int, len(ids))
	for i, id := range ids {
		localOf[id] = i
	}

	sub := front.NewTree(len(ids))
	for i, id := range ids {
		sub.Fronts[i] = t.Fronts[id]
		if p := t.Fronts[id].Parent; p != front.NoNode {
			sub.Fronts[i].Parent = localOf[p]
		} else {
			sub.Fronts[i].Parent = front.NoNode
		}
		if c := t.Fronts[id].FirstChild; c != front.NoNode {
			sub.Fronts[i].FirstChild = localOf[c]
		} else {
			sub.Fronts[i].FirstChild = front.NoNode
		}
		if sib := t.Fronts[id].NextSibling; sib != front.NoNode {
			sub.Fronts[i].NextSibling = localOf[sib]
		} else {
			sub.Fronts[i].NextSibling = front.NoNode
		}
	}
	sub.Root = 0
	return sub, ids
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
