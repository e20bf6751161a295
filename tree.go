// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"golang.org/x/exp/slices"
)

// Tree is a mutable, self-balancing container of half-open intervals,
// each tagged with an optional payload. It combines an AVL-balanced BST
// (the root field) with a flat membership set used for O(1) membership
// tests and set algebra, and a boundary histogram used for O(log n)
// Begin/End queries. See spec.md §3.3 and doc.go.
//
// A zero-value Tree is not usable; construct one with New,
// FromIntervals, or FromTuples.
type Tree[T Number, V comparable] struct {
	root     *node[T, V]
	members  map[Interval[T, V]]struct{}
	boundary *boundaryHistogram[T]
}

// Tuple is the Go analogue of the (begin, end, data) tuples the
// original project accepts when bulk-constructing a tree, used by
// FromTuples.
type Tuple[T Number, V comparable] struct {
	Begin, End T
	Data       V
}

// New returns an empty Tree.
func New[T Number, V comparable]() *Tree[T, V] {
	return &Tree[T, V]{
		members:  make(map[Interval[T, V]]struct{}),
		boundary: newBoundaryHistogram[T](),
	}
}

// FromIntervals bulk-constructs a Tree from a slice of intervals in
// O(n log n), matching IntervalTree(intervals) in the original project.
// Null intervals are rejected; duplicate intervals (by value) collapse
// to one, consistent with the membership set being a mathematical set.
func FromIntervals[T Number, V comparable](intervals []Interval[T, V]) (*Tree[T, V], error) {
	t := New[T, V]()
	deduped := make([]Interval[T, V], 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsNull() {
			return nil, invalidIntervalError(iv.Begin, iv.End)
		}
		if _, ok := t.members[iv]; ok {
			continue
		}
		t.members[iv] = struct{}{}
		deduped = append(deduped, iv)
	}
	for _, iv := range deduped {
		t.boundary.add(iv.Begin)
		t.boundary.add(iv.End)
	}
	t.root = newNodeFromIntervals(deduped)
	return t, nil
}

// FromTuples bulk-constructs a Tree from (begin, end, data) tuples.
func FromTuples[T Number, V comparable](tuples []Tuple[T, V]) (*Tree[T, V], error) {
	intervals := make([]Interval[T, V], len(tuples))
	for i, tup := range tuples {
		intervals[i] = Interval[T, V]{Begin: tup.Begin, End: tup.End, Data: tup.Data}
	}
	return FromIntervals(intervals)
}

// resetFromItems rebuilds every derived structure (root, boundary
// histogram) from a flat, already-deduplicated slice of intervals. Used
// by the restructuring and set-algebra operations once they've computed
// the new membership they want, rather than churning through repeated
// Add/Discard calls.
func (t *Tree[T, V]) resetFromItems(items []Interval[T, V]) {
	t.members = make(map[Interval[T, V]]struct{}, len(items))
	t.boundary = newBoundaryHistogram[T]()
	for _, iv := range items {
		t.members[iv] = struct{}{}
		t.boundary.add(iv.Begin)
		t.boundary.add(iv.End)
	}
	t.root = newNodeFromIntervals(items)
}

// AddInterval inserts iv. Inserting an interval already present is a
// no-op (set semantics). Returns ErrInvalidInterval for a null
// interval.
func (t *Tree[T, V]) AddInterval(iv Interval[T, V]) error {
	if iv.IsNull() {
		return invalidIntervalError(iv.Begin, iv.End)
	}
	if _, ok := t.members[iv]; ok {
		return nil
	}
	if t.root == nil {
		t.root = newLeaf[T, V](iv)
	} else {
		t.root = t.root.insert(iv)
	}
	t.members[iv] = struct{}{}
	t.boundary.add(iv.Begin)
	t.boundary.add(iv.End)
	return nil
}

// Add constructs an Interval from (begin, end, data) and inserts it.
func (t *Tree[T, V]) Add(begin, end T, data V) (Interval[T, V], error) {
	iv, err := New(begin, end, data)
	if err != nil {
		return Interval[T, V]{}, err
	}
	return iv, t.AddInterval(iv)
}

// SetRange is the Go analogue of the original project's tree[b:e] =
// data slice-assignment sugar: it constructs and inserts Interval{b, e,
// data}.
func (t *Tree[T, V]) SetRange(begin, end T, data V) error {
	iv, err := New(begin, end, data)
	if err != nil {
		return err
	}
	return t.AddInterval(iv)
}

// Remove deletes iv, returning ErrNotFound if it is not present.
func (t *Tree[T, V]) Remove(iv Interval[T, V]) error {
	if _, ok := t.members[iv]; !ok {
		return notFoundError(iv)
	}
	newRoot, _, err := t.root.remove(iv, true)
	if err != nil {
		return err
	}
	t.root = newRoot
	delete(t.members, iv)
	t.boundary.remove(iv.Begin)
	t.boundary.remove(iv.End)
	return nil
}

// Discard deletes iv if present; unlike Remove, a missing interval is
// silently ignored.
func (t *Tree[T, V]) Discard(iv Interval[T, V]) {
	if _, ok := t.members[iv]; !ok {
		return
	}
	newRoot, _, _ := t.root.remove(iv, false)
	t.root = newRoot
	delete(t.members, iv)
	t.boundary.remove(iv.Begin)
	t.boundary.remove(iv.End)
}

// RemoveOverlapPoint discards every interval overlapping p.
func (t *Tree[T, V]) RemoveOverlapPoint(p T) {
	for _, iv := range t.At(p) {
		t.Discard(iv)
	}
}

// RemoveOverlap discards every interval overlapping [begin, end). A
// degenerate range (begin >= end) removes nothing.
func (t *Tree[T, V]) RemoveOverlap(begin, end T) {
	if !(begin < end) {
		return
	}
	for _, iv := range t.Overlap(begin, end) {
		t.Discard(iv)
	}
}

// RemoveEnvelop discards every interval fully contained within
// [begin, end).
func (t *Tree[T, V]) RemoveEnvelop(begin, end T) {
	if !(begin < end) {
		return
	}
	for _, iv := range t.Overlap(begin, end) {
		if begin <= iv.Begin && iv.End <= end {
			t.Discard(iv)
		}
	}
}

// Clear removes every interval, leaving an empty Tree.
func (t *Tree[T, V]) Clear() {
	t.root = nil
	t.members = make(map[Interval[T, V]]struct{})
	t.boundary = newBoundaryHistogram[T]()
}

// At returns every interval containing point p.
func (t *Tree[T, V]) At(p T) []Interval[T, V] {
	var out []Interval[T, V]
	if t.root != nil {
		t.root.searchPoint(p, &out)
	}
	return out
}

// Overlap returns every interval overlapping [begin, end).
func (t *Tree[T, V]) Overlap(begin, end T) []Interval[T, V] {
	var out []Interval[T, V]
	if t.root != nil && begin < end {
		t.root.searchOverlap(begin, end, &out)
	}
	return out
}

// Envelop returns every interval fully contained within [begin, end).
func (t *Tree[T, V]) Envelop(begin, end T) []Interval[T, V] {
	var out []Interval[T, V]
	for _, iv := range t.Overlap(begin, end) {
		if begin <= iv.Begin && iv.End <= end {
			out = append(out, iv)
		}
	}
	return out
}

// OverlapsPoint reports whether any interval contains p.
func (t *Tree[T, V]) OverlapsPoint(p T) bool {
	return len(t.At(p)) > 0
}

// Overlaps reports whether any interval overlaps [begin, end).
func (t *Tree[T, V]) Overlaps(begin, end T) bool {
	return len(t.Overlap(begin, end)) > 0
}

// ContainsInterval reports whether iv is a member of the tree (exact
// match on Begin, End, and Data).
func (t *Tree[T, V]) ContainsInterval(iv Interval[T, V]) bool {
	_, ok := t.members[iv]
	return ok
}

// Begin returns the smallest interval-start coordinate in the tree. The
// second return value is false for an empty tree.
func (t *Tree[T, V]) Begin() (T, bool) {
	return t.boundary.min()
}

// End returns the largest interval-end coordinate in the tree. The
// second return value is false for an empty tree.
func (t *Tree[T, V]) End() (T, bool) {
	return t.boundary.max()
}

// Range returns the single interval spanning from Begin() to End(). The
// second return value is false for an empty tree.
func (t *Tree[T, V]) Range() (Interval[T, V], bool) {
	begin, ok := t.Begin()
	if !ok {
		return Interval[T, V]{}, false
	}
	end, _ := t.End()
	var zero V
	return Interval[T, V]{Begin: begin, End: end, Data: zero}, true
}

// Span returns End() - Begin(), or the zero value for an empty tree.
func (t *Tree[T, V]) Span() T {
	rng, ok := t.Range()
	if !ok {
		var zero T
		return zero
	}
	return rng.End - rng.Begin
}

// Len returns the number of intervals stored.
func (t *Tree[T, V]) Len() int {
	return len(t.members)
}

// IsEmpty reports whether the tree holds no intervals.
func (t *Tree[T, V]) IsEmpty() bool {
	return len(t.members) == 0
}

// Items returns every interval in the tree, sorted by the tree's total
// order (Begin, then End, then Data), giving deterministic iteration.
func (t *Tree[T, V]) Items() []Interval[T, V] {
	items := make([]Interval[T, V], 0, len(t.members))
	for iv := range t.members {
		items = append(items, iv)
	}
	slices.SortFunc(items, func(a, b Interval[T, V]) bool { return less(a, b) })
	return items
}

// Do calls fn for every interval in sorted order, stopping early if fn
// returns true. It reports whether iteration was stopped early.
func (t *Tree[T, V]) Do(fn func(iv Interval[T, V]) (done bool)) bool {
	for _, iv := range t.Items() {
		if fn(iv) {
			return true
		}
	}
	return false
}

// Copy returns an independent copy of the tree: mutating either tree
// afterward does not affect the other. Intervals are copied by value, so
// a payload that is a pointer is shared between the two trees.
func (t *Tree[T, V]) Copy() *Tree[T, V] {
	cp, _ := FromIntervals(t.Items())
	return cp
}

// Clone is Copy under a more Go-conventional name.
func (t *Tree[T, V]) Clone() *Tree[T, V] {
	return t.Copy()
}

// Equal reports whether t and other hold exactly the same set of
// intervals.
func (t *Tree[T, V]) Equal(other *Tree[T, V]) bool {
	if other == nil || len(t.members) != len(other.members) {
		return false
	}
	for iv := range t.members {
		if _, ok := other.members[iv]; !ok {
			return false
		}
	}
	return true
}
