// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"golang.org/x/exp/slices"
)

// node is one vertex of the AVL-balanced BST described in spec.md §3.2.
// It owns sCenter, the non-empty set of intervals that all contain
// pivot, kept sorted by compare so that traversal order is deterministic.
//
// This is a direct translation of the original project's Node class
// (x_center/s_center/left_node/right_node/balance), renamed to Go
// conventions. The rotation machinery (rotate/rotateLeft/rotateRight)
// follows the same "rotate, then re-home any center interval the
// rotation displaced" shape as the teacher's own
// node.rotateLeft/rotateRight/fixUp in its LLRB interval-tree backing,
// with an AVL balance factor standing in for the LLRB color bit.
type node[T Number, V comparable] struct {
	pivot       T
	sCenter     []Interval[T, V]
	left, right *node[T, V]
	balance     int8
	depth       int32
}

func newLeaf[T Number, V comparable](iv Interval[T, V]) *node[T, V] {
	return &node[T, V]{pivot: iv.Begin, sCenter: []Interval[T, V]{iv}, depth: 1}
}

// newNodeFromIntervals builds a balanced subtree from an arbitrary
// (unsorted) slice of intervals in O(n log n): it sorts once, then
// recursively picks the median's Begin as each subtree's pivot. This is
// the bulk-construction path used by FromIntervals/FromTuples/Copy.
func newNodeFromIntervals[T Number, V comparable](intervals []Interval[T, V]) *node[T, V] {
	if len(intervals) == 0 {
		return nil
	}
	sorted := append([]Interval[T, V](nil), intervals...)
	slices.SortFunc(sorted, func(a, b Interval[T, V]) bool { return less(a, b) })
	return newNodeFromSorted(sorted)
}

func newNodeFromSorted[T Number, V comparable](sorted []Interval[T, V]) *node[T, V] {
	if len(sorted) == 0 {
		return nil
	}
	pivot := sorted[len(sorted)/2].Begin
	n := &node[T, V]{pivot: pivot}
	var sLeft, sRight []Interval[T, V]
	for _, iv := range sorted {
		switch {
		case iv.End <= pivot:
			sLeft = append(sLeft, iv)
		case iv.Begin > pivot:
			sRight = append(sRight, iv)
		default:
			n.sCenter = insertSorted(n.sCenter, iv)
		}
	}
	n.left = newNodeFromSorted(sLeft)
	n.right = newNodeFromSorted(sRight)
	return n.rotate()
}

func insertSorted[T Number, V comparable](s []Interval[T, V], iv Interval[T, V]) []Interval[T, V] {
	idx, _ := slices.BinarySearchFunc(s, iv, compare[T, V])
	return slices.Insert(s, idx, iv)
}

func findInCenter[T Number, V comparable](s []Interval[T, V], iv Interval[T, V]) (int, bool) {
	return slices.BinarySearchFunc(s, iv, compare[T, V])
}

func removeCenterAt[T Number, V comparable](s []Interval[T, V], idx int) []Interval[T, V] {
	return slices.Delete(s, idx, idx+1)
}

// coversPivot reports whether iv contains this node's pivot, i.e.
// whether iv belongs in this node's sCenter rather than a child.
func (n *node[T, V]) coversPivot(iv Interval[T, V]) bool {
	return iv.ContainsPoint(n.pivot)
}

func depthOf[T Number, V comparable](n *node[T, V]) int32 {
	if n == nil {
		return 0
	}
	return n.depth
}

// refresh recomputes depth and balance from the children, per spec.md
// §3.2's "depth correctness" invariant: depth = 1 + max(child depths),
// balance = right depth - left depth.
func (n *node[T, V]) refresh() {
	ld, rd := depthOf(n.left), depthOf(n.right)
	if ld > rd {
		n.depth = 1 + ld
	} else {
		n.depth = 1 + rd
	}
	n.balance = int8(rd - ld)
}

// rotate recomputes balance and, if the AVL property is violated,
// performs a single or double rotation to restore it, returning the
// (possibly new) root of this subtree. Mirrors Node.rotate in the
// original project.
func (n *node[T, V]) rotate() *node[T, V] {
	n.refresh()
	if n.balance > -2 && n.balance < 2 {
		return n
	}
	myHeavy := n.balance > 0
	var childBalance int8
	if myHeavy {
		childBalance = n.right.balance
	} else {
		childBalance = n.left.balance
	}
	childHeavy := childBalance > 0
	if childBalance == 0 {
		// Tie-break (possible after deletion): treat a balanced heavy
		// child as leaning the same way as the parent, guaranteeing a
		// single rotation makes progress.
		childHeavy = myHeavy
	}
	if myHeavy == childHeavy {
		return n.rotateSingle()
	}
	return n.rotateDouble()
}

// rotateSingle performs a single rotation in the direction indicated by
// n's own balance sign, without checking whether |balance| actually
// exceeds 1. It is also used as the second step of a double rotation.
func (n *node[T, V]) rotateSingle() *node[T, V] {
	if n.balance > 0 {
		return n.rotateLeft()
	}
	return n.rotateRight()
}

// rotateDouble resolves an LR/RL imbalance: first rotates the heavy
// child in its own (opposite) direction, then performs a single
// rotation on n.
func (n *node[T, V]) rotateDouble() *node[T, V] {
	if n.balance > 0 {
		n.right = n.right.rotateSingle()
	} else {
		n.left = n.left.rotateSingle()
	}
	n.refresh()
	return n.rotateSingle()
}

// rotateLeft promotes n.right to be the new subtree root (used when n
// is right-heavy). After the rotation, any interval in n's former
// sCenter that now straddles the new root's pivot is re-homed via
// reinsertDisplaced, preserving the center property (spec.md §4.2.1,
// §9).
func (n *node[T, V]) rotateLeft() *node[T, V] {
	save := n.right
	n.right = save.left
	save.left = n
	save.left.refresh()
	save.left = save.left.rotate()
	save.refresh()
	return reinsertDisplaced(n, save)
}

// rotateRight is the mirror image of rotateLeft, used when n is
// left-heavy.
func (n *node[T, V]) rotateRight() *node[T, V] {
	save := n.left
	n.left = save.right
	save.right = n
	save.right.refresh()
	save.right = save.right.rotate()
	save.refresh()
	return reinsertDisplaced(n, save)
}

// reinsertDisplaced re-homes any interval in old.sCenter that now
// covers save's pivot (and therefore can no longer legally sit in old's
// subtree under the BST property) into save itself. Every such interval
// covers save's pivot, so save.insert places it directly in
// save.sCenter.
func reinsertDisplaced[T Number, V comparable](old, save *node[T, V]) *node[T, V] {
	remaining := old.sCenter[:0]
	for _, iv := range old.sCenter {
		if save.coversPivot(iv) {
			save = save.insert(iv)
		} else {
			remaining = append(remaining, iv)
		}
	}
	old.sCenter = remaining
	return save
}

// insert integrates iv into the subtree rooted at n, rebalancing as
// needed, and returns the new subtree root. Mirrors Node.insert.
func (n *node[T, V]) insert(iv Interval[T, V]) *node[T, V] {
	if n.coversPivot(iv) {
		n.sCenter = insertSorted(n.sCenter, iv)
		return n
	}
	if iv.End <= n.pivot {
		if n.left == nil {
			n.left = newLeaf[T, V](iv)
		} else {
			n.left = n.left.insert(iv)
		}
	} else {
		if n.right == nil {
			n.right = newLeaf[T, V](iv)
		} else {
			n.right = n.right.insert(iv)
		}
	}
	return n.rotate()
}

// remove erases iv from the subtree rooted at n, pruning and
// rebalancing as needed, and returns (new subtree root, whether no
// further rebalancing is required on the way up, error). If mustExist
// is true and iv is not found, it returns notFoundError; otherwise a
// miss is a silent no-op (the Discard path).
func (n *node[T, V]) remove(iv Interval[T, V], mustExist bool) (*node[T, V], bool, error) {
	if n.coversPivot(iv) {
		idx, found := findInCenter(n.sCenter, iv)
		if !found {
			if mustExist {
				return n, false, notFoundError(iv)
			}
			return n, true, nil
		}
		n.sCenter = removeCenterAt(n.sCenter, idx)
		if len(n.sCenter) > 0 {
			return n, true, nil
		}
		return n.prune(), false, nil
	}
	if iv.End <= n.pivot {
		if n.left == nil {
			if mustExist {
				return n, false, notFoundError(iv)
			}
			return n, true, nil
		}
		child, noRebalanceNeeded, err := n.left.remove(iv, mustExist)
		n.left = child
		if err != nil {
			return n, false, err
		}
		if noRebalanceNeeded {
			return n, true, nil
		}
		return n.rotate(), false, nil
	}
	if n.right == nil {
		if mustExist {
			return n, false, notFoundError(iv)
		}
		return n, true, nil
	}
	child, noRebalanceNeeded, err := n.right.remove(iv, mustExist)
	n.right = child
	if err != nil {
		return n, false, err
	}
	if noRebalanceNeeded {
		return n, true, nil
	}
	return n.rotate(), false, nil
}

// prune is called once remove has emptied a node's sCenter: it splices
// the now-pointless node out of the tree, promoting a child (the common
// case) or the in-order predecessor (when both children are present).
func (n *node[T, V]) prune() *node[T, V] {
	if n.left == nil || n.right == nil {
		if n.left != nil {
			return n.left
		}
		return n.right
	}
	heir, newLeft := n.left.popGreatestChild()
	n.left = newLeft
	heir.left = n.left
	heir.right = n.right
	return heir.rotate()
}

// popGreatestChild removes the greatest descendant of n (by pivot) and
// returns it as a standalone node ready to replace a pruned ancestor,
// along with the subtree that remains after its removal. See spec.md
// §4.2.2: popping the greatest descendant may, along the way, promote
// intervals whose coverage of the shifted pivot changed; those are
// re-homed the same way rotation displacement is.
func (n *node[T, V]) popGreatestChild() (heir, replacement *node[T, V]) {
	if n.right == nil {
		maxIv := n.sCenter[0]
		for _, iv := range n.sCenter[1:] {
			if iv.End > maxIv.End {
				maxIv = iv
			}
		}
		var childPivot T
		if maxIv.Length() <= T(1) {
			childPivot = maxIv.Begin
		} else {
			childPivot = maxIv.End - T(1)
		}
		var childCenter []Interval[T, V]
		remaining := n.sCenter[:0]
		for _, iv := range n.sCenter {
			if iv.ContainsPoint(childPivot) {
				childCenter = insertSorted(childCenter, iv)
			} else {
				remaining = append(remaining, iv)
			}
		}
		n.sCenter = remaining
		heir = &node[T, V]{pivot: childPivot, sCenter: childCenter, depth: 1}
		if len(n.sCenter) > 0 {
			return heir, n
		}
		return heir, n.left
	}
	heir, newRight := n.right.popGreatestChild()
	n.right = newRight
	newSelf := n.rotate()
	remaining := newSelf.sCenter[:0]
	for _, iv := range newSelf.sCenter {
		if iv.ContainsPoint(heir.pivot) {
			heir.sCenter = insertSorted(heir.sCenter, iv)
		} else {
			remaining = append(remaining, iv)
		}
	}
	newSelf.sCenter = remaining
	if len(newSelf.sCenter) > 0 {
		return heir, newSelf
	}
	return heir, newSelf.prune()
}

// searchPoint appends every interval in this subtree containing p to
// out, pruning the BST walk using the pivot.
func (n *node[T, V]) searchPoint(p T, out *[]Interval[T, V]) {
	for _, iv := range n.sCenter {
		if iv.ContainsPoint(p) {
			*out = append(*out, iv)
		}
	}
	if p < n.pivot && n.left != nil {
		n.left.searchPoint(p, out)
	} else if p > n.pivot && n.right != nil {
		n.right.searchPoint(p, out)
	}
}

// searchOverlap appends every interval in this subtree overlapping
// [b, e) to out. Per spec.md §4.2, both children may be visited when
// the query straddles the pivot.
func (n *node[T, V]) searchOverlap(b, e T, out *[]Interval[T, V]) {
	for _, iv := range n.sCenter {
		if iv.Overlaps(b, e) {
			*out = append(*out, iv)
		}
	}
	if b < n.pivot && n.left != nil {
		n.left.searchOverlap(b, e, out)
	}
	if e > n.pivot && n.right != nil {
		n.right.searchOverlap(b, e, out)
	}
}

// allChildren appends every interval stored anywhere in this subtree to
// out; used by Tree.Verify and by bulk restructuring.
func (n *node[T, V]) allChildren(out *[]Interval[T, V]) {
	*out = append(*out, n.sCenter...)
	if n.left != nil {
		n.left.allChildren(out)
	}
	if n.right != nil {
		n.right.allChildren(out)
	}
}
