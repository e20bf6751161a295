// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

// SplitFunc computes the payload for one half of an interval being cut
// at a point by Slice or Chop. lower is true for the [old.Begin, point)
// half and false for the [point, old.End) half.
type SplitFunc[T Number, V comparable] func(old Interval[T, V], lower bool) V

// Reducer combines two payloads into one when MergeOverlaps or
// MergeEquals collapses several intervals into a single one.
type Reducer[V any] func(accumulated, next V) V

// Slice splits every interval that strictly straddles point into two
// intervals meeting at point. An interval already bounded by point
// (Begin == point or End == point) is left untouched. Without split,
// both halves keep the original payload.
func (t *Tree[T, V]) Slice(point T, split ...SplitFunc[T, V]) {
	affected := t.At(point)
	for _, iv := range affected {
		if !(iv.Begin < point && point < iv.End) {
			continue
		}
		lowerData, upperData := iv.Data, iv.Data
		if len(split) > 0 {
			lowerData = split[0](iv, true)
			upperData = split[0](iv, false)
		}
		t.Discard(iv)
		_ = t.AddInterval(Interval[T, V]{Begin: iv.Begin, End: point, Data: lowerData})
		_ = t.AddInterval(Interval[T, V]{Begin: point, End: iv.End, Data: upperData})
	}
}

// Chop removes the range [begin, end) from every interval it overlaps:
// intervals straddling begin or end are first sliced at the boundary,
// then whatever now lies fully within [begin, end) is discarded. A
// degenerate range is a no-op.
func (t *Tree[T, V]) Chop(begin, end T, split ...SplitFunc[T, V]) {
	if !(begin < end) {
		return
	}
	t.Slice(begin, split...)
	t.Slice(end, split...)
	for _, iv := range t.Overlap(begin, end) {
		if begin <= iv.Begin && iv.End <= end {
			t.Discard(iv)
		}
	}
}

// SplitOverlaps slices the tree at every boundary coordinate currently
// present, so that afterward no two intervals partially overlap: any
// overlap between two intervals is now a full containment at shared
// boundaries.
func (t *Tree[T, V]) SplitOverlaps() {
	for _, p := range t.boundary.keysAscending() {
		t.Slice(p)
	}
}

// MergeOverlaps collapses every run of mutually overlapping intervals
// into one spanning interval. Intervals that merely touch ([a,b) and
// [b,c)) are not merged. Without a reducer, the payload of the merged
// interval with the greatest End wins (spec.md §9).
func (t *Tree[T, V]) MergeOverlaps(reduce ...Reducer[V]) {
	items := t.Items()
	if len(items) == 0 {
		return
	}
	merged := make([]Interval[T, V], 0, len(items))
	curBegin, curEnd, curData := items[0].Begin, items[0].End, items[0].Data
	changed := false
	for _, iv := range items[1:] {
		if iv.Begin < curEnd {
			changed = true
			if len(reduce) > 0 {
				curData = reduce[0](curData, iv.Data)
			} else if iv.End > curEnd {
				curData = iv.Data
			}
			if iv.End > curEnd {
				curEnd = iv.End
			}
			continue
		}
		merged = append(merged, Interval[T, V]{Begin: curBegin, End: curEnd, Data: curData})
		curBegin, curEnd, curData = iv.Begin, iv.End, iv.Data
	}
	merged = append(merged, Interval[T, V]{Begin: curBegin, End: curEnd, Data: curData})
	if !changed {
		return
	}
	t.resetFromItems(merged)
}

// MergeEquals collapses every group of intervals that share the same
// (Begin, End) pair into one, combining their payloads. Without a
// reducer, the last payload encountered (in the tree's total order)
// wins.
func (t *Tree[T, V]) MergeEquals(reduce ...Reducer[V]) {
	items := t.Items()
	if len(items) == 0 {
		return
	}
	merged := make([]Interval[T, V], 0, len(items))
	i := 0
	changed := false
	for i < len(items) {
		j := i + 1
		data := items[i].Data
		for j < len(items) && items[j].Begin == items[i].Begin && items[j].End == items[i].End {
			if len(reduce) > 0 {
				data = reduce[0](data, items[j].Data)
			} else {
				data = items[j].Data
			}
			j++
		}
		if j-i > 1 {
			changed = true
		}
		merged = append(merged, Interval[T, V]{Begin: items[i].Begin, End: items[i].End, Data: data})
		i = j
	}
	if !changed {
		return
	}
	t.resetFromItems(merged)
}
