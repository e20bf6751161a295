// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"github.com/google/btree"
)

// boundaryEntry is one coordinate in the boundary histogram: a
// multiset entry tracking how many stored intervals begin or end at
// key. It implements btree.Item against the teacher's pinned
// google/btree v1.0.1 (the pre-generics Item/Less API).
type boundaryEntry[T Number] struct {
	key   T
	count int
}

func (e *boundaryEntry[T]) Less(than btree.Item) bool {
	return e.key < than.(*boundaryEntry[T]).key
}

// boundaryHistogram is the multiset of interval endpoints described in
// spec.md §3.3/§9: it lets Tree.Begin/Tree.End answer in O(log n) via
// btree.Min/Max rather than a linear scan of all_intervals, the same
// trade the teacher's own pkg/util/interval makes by keeping range
// bookkeeping in a btree rather than recomputing it from scratch.
type boundaryHistogram[T Number] struct {
	tree *btree.BTree
}

func newBoundaryHistogram[T Number]() *boundaryHistogram[T] {
	return &boundaryHistogram[T]{tree: btree.New(32)}
}

func (h *boundaryHistogram[T]) add(key T) {
	probe := &boundaryEntry[T]{key: key}
	if item := h.tree.Get(probe); item != nil {
		item.(*boundaryEntry[T]).count++
		return
	}
	probe.count = 1
	h.tree.ReplaceOrInsert(probe)
}

func (h *boundaryHistogram[T]) remove(key T) {
	probe := &boundaryEntry[T]{key: key}
	item := h.tree.Get(probe)
	if item == nil {
		return
	}
	e := item.(*boundaryEntry[T])
	if e.count <= 1 {
		h.tree.Delete(probe)
		return
	}
	e.count--
}

func (h *boundaryHistogram[T]) min() (T, bool) {
	item := h.tree.Min()
	if item == nil {
		var zero T
		return zero, false
	}
	return item.(*boundaryEntry[T]).key, true
}

func (h *boundaryHistogram[T]) max() (T, bool) {
	item := h.tree.Max()
	if item == nil {
		var zero T
		return zero, false
	}
	return item.(*boundaryEntry[T]).key, true
}

func (h *boundaryHistogram[T]) len() int {
	return h.tree.Len()
}

// countAt returns how many stored intervals begin or end at key.
func (h *boundaryHistogram[T]) countAt(key T) int {
	item := h.tree.Get(&boundaryEntry[T]{key: key})
	if item == nil {
		return 0
	}
	return item.(*boundaryEntry[T]).count
}

// keysAscending returns every distinct boundary coordinate, smallest
// first. Used by SplitOverlaps, which slices the tree at each existing
// boundary.
func (h *boundaryHistogram[T]) keysAscending() []T {
	keys := make([]T, 0, h.tree.Len())
	h.tree.Ascend(func(item btree.Item) bool {
		keys = append(keys, item.(*boundaryEntry[T]).key)
		return true
	})
	return keys
}
