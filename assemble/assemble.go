// Package assemble builds one front's dense frontal matrix from the
// original matrix's entries and its children's delayed columns and
// contribution blocks.
//
// Grounded directly on assemble_node in original_source's assemble.hxx:
// same five-step shape (sum delays, size/zero the front, scatter A,
// build the row-id-to-local-index map, fold children), translated from
// pointer-offset C to index-and-slice Go. The teacher has no assembly
// step of its own to imitate (RuiCat-circuit builds dense matrices
// directly from circuit stamps), so the control flow below follows the
// original_source kernel; the surrounding package/error idiom (error
// returns, no panics for data-dependent failure) follows the
// teacher's maths/lu_block.go convention.
package assemble

import (
	"fmt"

	"multifrontal/alloc"
	"multifrontal/front"
)

// Assemble fills in node's Ndelay/Nrow/Ncol/Lcol/Perm/Contrib fields from
// its children (already fully processed, in child-list order as returned
// by front.Tree.Children) plus the original matrix entries in aval.
//
// scaling may be nil (no scaling applied). mp is a reusable scratch
// vector, indexed by global row id, at least as large as the highest
// global row id across the tree plus one; its contents are only
// meaningful within a single Assemble call and are freely overwritten on
// the next one.
func Assemble(node *front.Front, children []*front.Front, mp []int, aval []float64, scaling []float64, alc front.Allocator, stacks *alloc.Stack) error {
	// 1. Sum incoming delays.
	ndelayIn := 0
	for _, c := range children {
		ndelayIn += c.NdelayOut
	}
	node.NdelayIn = ndelayIn

	nrow := node.NrowExpected + ndelayIn
	ncol := node.NcolExpected + ndelayIn
	node.Nrow = nrow
	node.Ncol = ncol

	// 2. Size and zero-initialize the front.
	ld := nrow
	if !node.Posdef {
		ld = nrow + 2
	}
	node.Lcol = alc.AllocReal(ld * ncol)
	node.Perm = alc.AllocInt(ncol)
	for i := 0; i < node.NcolExpected; i++ {
		node.Perm[i] = node.Rlist[i]
	}

	cdim := node.ContribDim()
	if cdim > 0 {
		node.Contrib = stacks.Alloc(node.Parity(), cdim*cdim)
	} else {
		node.Contrib = nil
	}

	// 3. Scatter original matrix entries.
	for _, e := range node.Amap {
		c := e.Dest / node.NrowExpected
		r := e.Dest % node.NrowExpected
		k := c*ld + r
		if r >= node.NcolExpected {
			k += ndelayIn
		}
		if k < 0 || k >= len(node.Lcol) {
			return fmt.Errorf("assemble: amap entry out of range (k=%d, len=%d)", k, len(node.Lcol))
		}
		val := aval[e.Source]
		if scaling != nil {
			val *= scaling[node.Rlist[r]] * scaling[node.Rlist[c]]
		}
		node.Lcol[k] = val
	}

	if len(children) == 0 {
		return nil
	}

	// 4. Build the row-id-to-local-index map over this node's own rlist.
	for i := 0; i < node.NcolExpected; i++ {
		mp[node.Rlist[i]] = i
	}
	for i := node.NcolExpected; i < node.NrowExpected; i++ {
		mp[node.Rlist[i]] = i + ndelayIn
	}

	// 5. Fold children, in child-list order.
	delayCol := node.NcolExpected
	for _, child := range children {
		lds := child.LcolRows() // child.Lcol's actual storage stride

		// Delay rewiring.
		for i := 0; i < child.NdelayOut; i++ {
			destOff := delayCol * (ld + 1)
			srcOff := (child.Nelim + i) * (lds + 1)
			length := child.NdelayOut - i
			copy(node.Lcol[destOff:destOff+length], child.Lcol[srcOff:srcOff+length])
			node.Perm[delayCol] = child.Perm[child.Nelim+i]

			srcBase := child.Nelim*lds + child.NdelayIn + i*lds
			for j := child.NcolExpected; j < child.NrowExpected; j++ {
				r := mp[child.Rlist[j]]
				v := child.Lcol[srcBase+j]
				if r < ncol {
					node.Lcol[r*ld+delayCol] = v
				} else {
					node.Lcol[delayCol*ld+r] = v
				}
			}
			delayCol++
		}

		// Contribution fold.
		if child.Contrib != nil {
			cm := child.NrowExpected - child.NcolExpected
			for i := 0; i < cm; i++ {
				cc := mp[child.Rlist[child.NcolExpected+i]]
				srcBase := i * cm
				if cc < ncol {
					destOff := cc * ld
					for j := i; j < cm; j++ {
						r := mp[child.Rlist[child.NcolExpected+j]]
						node.Lcol[destOff+r] += child.Contrib[srcBase+j]
					}
				} else {
					ownDim := node.ContribDim()
					destOff := (cc - ncol) * ownDim
					for j := i; j < cm; j++ {
						r := mp[child.Rlist[child.NcolExpected+j]] - ncol
						node.Contrib[destOff+r] += child.Contrib[srcBase+j]
					}
				}
			}
		}
	}

	// Release the folded contribution blocks in reverse child-list order:
	// siblings allocated theirs on the same stack side in child-list order,
	// so this is the reverse of their allocation order.
	for ci := len(children) - 1; ci >= 0; ci-- {
		child := children[ci]
		if child.Contrib != nil {
			stacks.Free(child.Parity(), child.Contrib)
			child.Contrib = nil
		}
	}

	return nil
}
