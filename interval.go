// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is the constraint placed on the coordinate type of an
// Interval: it must be totally ordered and support subtraction, so that
// Length and DistanceTo are defined. This is the Go rendering of
// spec.md's "totally ordered and subtractable."
type Number interface {
	constraints.Integer | constraints.Float
}

// DataComparer lets a payload type define its own tie-breaking order
// within a node's local set, when two intervals share (Begin, End). If a
// payload does not implement DataComparer, intervals carrying it are
// ordered by a stable tag derived from the payload's type (see
// compareData), so that the total order required by the BST property
// never depends on comparisons Go cannot perform at compile time.
type DataComparer interface {
	CompareData(other any) int
}

// Interval is an immutable half-open range [Begin, End) tagged with an
// optional Data payload. Two intervals are equal iff all three fields
// are equal; Data must be comparable so that Interval itself can serve
// as a Go map key (the tree's membership set is a map[Interval[T,V]]).
type Interval[T Number, V comparable] struct {
	Begin, End T
	Data       V
}

// New constructs an Interval, returning ErrInvalidInterval if begin is
// not strictly less than end. Most callers insert via Tree.AddInterval,
// which performs this same validation; New exists for callers that want
// to construct and inspect an Interval before deciding what to do with
// it.
func New[T Number, V comparable](begin, end T, data V) (Interval[T, V], error) {
	if !(begin < end) {
		return Interval[T, V]{}, invalidIntervalError(begin, end)
	}
	return Interval[T, V]{Begin: begin, End: end, Data: data}, nil
}

// IsNull reports whether the interval is degenerate (Begin >= End). A
// null interval is never stored in a Tree.
func (iv Interval[T, V]) IsNull() bool {
	return iv.Begin >= iv.End
}

// Length returns End - Begin, or 0 for a null interval.
func (iv Interval[T, V]) Length() T {
	if iv.IsNull() {
		var zero T
		return zero
	}
	return iv.End - iv.Begin
}

// ContainsPoint reports whether p falls in the half-open range
// [Begin, End).
func (iv Interval[T, V]) ContainsPoint(p T) bool {
	return iv.Begin <= p && p < iv.End
}

// Overlaps reports whether iv shares any point with [begin, end) under
// half-open semantics.
func (iv Interval[T, V]) Overlaps(begin, end T) bool {
	return iv.Begin < end && begin < iv.End
}

// OverlapsPoint reports whether iv overlaps the single point p; it is
// equivalent to ContainsPoint.
func (iv Interval[T, V]) OverlapsPoint(p T) bool {
	return iv.ContainsPoint(p)
}

// OverlapsInterval reports whether iv and other share any point.
func (iv Interval[T, V]) OverlapsInterval(other Interval[T, V]) bool {
	return iv.Overlaps(other.Begin, other.End)
}

// ContainsInterval reports whether iv envelops other: iv.Begin <=
// other.Begin and other.End <= iv.End.
func (iv Interval[T, V]) ContainsInterval(other Interval[T, V]) bool {
	return iv.Begin <= other.Begin && other.End <= iv.End
}

// DistanceTo returns the size of the gap between iv and other, or 0 if
// they overlap or touch.
func (iv Interval[T, V]) DistanceTo(other Interval[T, V]) T {
	if iv.OverlapsInterval(other) {
		var zero T
		return zero
	}
	if iv.Begin < other.Begin {
		return other.Begin - iv.End
	}
	return iv.Begin - other.End
}

// String implements fmt.Stringer, mirroring the original project's
// Interval.__repr__.
func (iv Interval[T, V]) String() string {
	var zero V
	if any(iv.Data) == any(zero) {
		return fmt.Sprintf("Interval(%v, %v)", iv.Begin, iv.End)
	}
	return fmt.Sprintf("Interval(%v, %v, %v)", iv.Begin, iv.End, iv.Data)
}

// compare implements the total order from spec.md §3.1: by Begin, then
// End, then Data (falling back to a type-tag comparison when Data is
// not itself ordered). It is the order used to keep a node's sCenter
// slice sorted, and the order used by Tree.Items for deterministic
// iteration.
func compare[T Number, V comparable](a, b Interval[T, V]) int {
	if a.Begin != b.Begin {
		if a.Begin < b.Begin {
			return -1
		}
		return 1
	}
	if a.End != b.End {
		if a.End < b.End {
			return -1
		}
		return 1
	}
	return compareData(a.Data, b.Data)
}

// compareData breaks ties on the Data field. If the payload is ==-equal
// we're done; otherwise we try a DataComparer, and failing that fall
// back to comparing a stable tag derived from the payload's dynamic
// type, per spec.md §3.1 and §9.
func compareData[V comparable](a, b V) int {
	if a == b {
		return 0
	}
	if ac, ok := any(a).(DataComparer); ok {
		return ac.CompareData(b)
	}
	at, bt := reflect.TypeOf(a), reflect.TypeOf(b)
	an, bn := typeName(at), typeName(bt)
	if an != bn {
		if an < bn {
			return -1
		}
		return 1
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// less reports whether a sorts strictly before b under compare.
func less[T Number, V comparable](a, b Interval[T, V]) bool {
	return compare(a, b) < 0
}
