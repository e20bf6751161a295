// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"math"

	"golang.org/x/exp/slices"
)

// Verify re-checks every structural invariant from spec.md §3.2/§3.3
// and returns a descriptive InvariantViolation error on the first one
// broken, or nil if the tree is internally consistent. It is never
// required for correct use of a Tree; it exists for tests and for
// callers debugging a suspected corruption.
func (t *Tree[T, V]) Verify() error {
	if t.root == nil {
		if len(t.members) != 0 {
			return invariantViolation("intervaltree: nil root but %d members recorded", len(t.members))
		}
		if t.boundary.len() != 0 {
			return invariantViolation("intervaltree: nil root but boundary histogram is non-empty")
		}
		return nil
	}
	if err := t.root.verify(); err != nil {
		return err
	}
	var all []Interval[T, V]
	t.root.allChildren(&all)
	if len(all) != len(t.members) {
		return invariantViolation("intervaltree: tree holds %d intervals but membership set has %d", len(all), len(t.members))
	}
	for _, iv := range all {
		if _, ok := t.members[iv]; !ok {
			return invariantViolation("intervaltree: interval %s reachable from root but absent from membership set", iv)
		}
	}
	expected := make(map[T]int)
	for iv := range t.members {
		expected[iv.Begin]++
		expected[iv.End]++
	}
	if len(expected) != t.boundary.len() {
		return invariantViolation("intervaltree: boundary histogram has %d distinct keys, expected %d", t.boundary.len(), len(expected))
	}
	for key, count := range expected {
		if got := t.boundary.countAt(key); got != count {
			return invariantViolation("intervaltree: boundary count at %v is %d, expected %d", key, got, count)
		}
	}
	return nil
}

// verify checks the invariants local to n and recurses into its
// children. The BST ordering constraint is checked against every
// interval in each child subtree, not only the child's own sCenter:
// every interval in the left subtree must end at or before n.pivot, and
// every interval in the right subtree must begin strictly after it.
func (n *node[T, V]) verify() error {
	if len(n.sCenter) == 0 {
		return invariantViolation("intervaltree: node at pivot %v has an empty sCenter", n.pivot)
	}
	if !slices.IsSortedFunc(n.sCenter, func(a, b Interval[T, V]) bool { return less(a, b) }) {
		return invariantViolation("intervaltree: node at pivot %v has an unsorted sCenter", n.pivot)
	}
	for _, iv := range n.sCenter {
		if !iv.ContainsPoint(n.pivot) {
			return invariantViolation("intervaltree: interval %s stored at pivot %v does not contain it", iv, n.pivot)
		}
	}
	ld, rd := depthOf(n.left), depthOf(n.right)
	wantDepth := int32(1)
	if ld > rd {
		wantDepth += ld
	} else {
		wantDepth += rd
	}
	if n.depth != wantDepth {
		return invariantViolation("intervaltree: node at pivot %v has depth %d, expected %d", n.pivot, n.depth, wantDepth)
	}
	wantBalance := int8(rd - ld)
	if n.balance != wantBalance {
		return invariantViolation("intervaltree: node at pivot %v has balance %d, expected %d", n.pivot, n.balance, wantBalance)
	}
	if n.balance < -1 || n.balance > 1 {
		return invariantViolation("intervaltree: node at pivot %v violates the AVL property with balance %d", n.pivot, n.balance)
	}
	if n.left != nil {
		if !(n.left.pivot < n.pivot) {
			return invariantViolation("intervaltree: left child pivot %v is not less than parent pivot %v", n.left.pivot, n.pivot)
		}
		var sub []Interval[T, V]
		n.left.allChildren(&sub)
		for _, iv := range sub {
			if iv.End > n.pivot {
				return invariantViolation("intervaltree: interval %s in left subtree of pivot %v extends past it", iv, n.pivot)
			}
		}
		if err := n.left.verify(); err != nil {
			return err
		}
	}
	if n.right != nil {
		if !(n.right.pivot > n.pivot) {
			return invariantViolation("intervaltree: right child pivot %v is not greater than parent pivot %v", n.right.pivot, n.pivot)
		}
		var sub []Interval[T, V]
		n.right.allChildren(&sub)
		for _, iv := range sub {
			if iv.Begin <= n.pivot {
				return invariantViolation("intervaltree: interval %s in right subtree of pivot %v begins at or before it", iv, n.pivot)
			}
		}
		if err := n.right.verify(); err != nil {
			return err
		}
	}
	return nil
}

// Score returns an advisory measure of how close to optimally balanced
// the tree is, in [0, 1], where higher is better: the maximum over all
// subtrees of 1 - (depth - log2(size)) / size, with size counting
// intervals. A tree holding fewer than two intervals scores 0. It is diagnostic only
// (spec.md §4.2.3): nothing in the package relies on it, and a low
// score never indicates a broken invariant.
func (t *Tree[T, V]) Score() float64 {
	_, score := scoreSubtree[T, V](t.root)
	return score
}

func scoreSubtree[T Number, V comparable](n *node[T, V]) (size int, maxScore float64) {
	if n == nil {
		return 0, 0
	}
	lSize, lScore := scoreSubtree[T, V](n.left)
	rSize, rScore := scoreSubtree[T, V](n.right)
	size = lSize + rSize + len(n.sCenter)
	s := subtreeScore(n.depth, size)
	maxScore = s
	if lScore > maxScore {
		maxScore = lScore
	}
	if rScore > maxScore {
		maxScore = rScore
	}
	return size, maxScore
}

func subtreeScore(depth int32, size int) float64 {
	if size <= 1 {
		return 0
	}
	ideal := math.Log2(float64(size))
	s := 1 - (float64(depth)-ideal)/float64(size)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
