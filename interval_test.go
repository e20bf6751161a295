// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestNewRejectsNullIntervals(t *testing.T) {
	cases := []struct {
		begin, end int
	}{
		{5, 5},
		{5, 4},
		{0, 0},
	}
	for _, c := range cases {
		if _, err := New[int, string](c.begin, c.end, ""); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("New(%d, %d): got %v, want ErrInvalidInterval", c.begin, c.end, err)
		}
	}
}

func TestIntervalContainsPoint(t *testing.T) {
	iv, err := New[int, string](3, 7, "x")
	if err != nil {
		t.Fatal(err)
	}
	for p := 3; p < 7; p++ {
		if !iv.ContainsPoint(p) {
			t.Errorf("ContainsPoint(%d) = false, want true", p)
		}
	}
	if iv.ContainsPoint(2) || iv.ContainsPoint(7) {
		t.Error("ContainsPoint out of bounds returned true")
	}
}

func TestIntervalOverlaps(t *testing.T) {
	iv, _ := New[int, string](3, 7, "x")
	cases := []struct {
		begin, end int
		want       bool
	}{
		{0, 3, false},  // touches at begin, half-open
		{7, 10, false}, // touches at end
		{0, 4, true},
		{6, 10, true},
		{4, 5, true},
		{3, 7, true},
		{-5, 100, true},
	}
	for _, c := range cases {
		if got := iv.Overlaps(c.begin, c.end); got != c.want {
			t.Errorf("Overlaps(%d, %d) = %v, want %v", c.begin, c.end, got, c.want)
		}
	}
}

func TestIntervalContainsInterval(t *testing.T) {
	outer, _ := New[int, string](0, 10, "o")
	inner, _ := New[int, string](2, 5, "i")
	if !outer.ContainsInterval(inner) {
		t.Error("outer should contain inner")
	}
	if inner.ContainsInterval(outer) {
		t.Error("inner should not contain outer")
	}
}

func TestIntervalDistanceTo(t *testing.T) {
	a, _ := New[int, string](0, 5, "a")
	b, _ := New[int, string](10, 15, "b")
	if got := a.DistanceTo(b); got != 5 {
		t.Errorf("DistanceTo = %d, want 5", got)
	}
	if got := b.DistanceTo(a); got != 5 {
		t.Errorf("DistanceTo (reversed) = %d, want 5", got)
	}
	c, _ := New[int, string](3, 8, "c")
	if got := a.DistanceTo(c); got != 0 {
		t.Errorf("DistanceTo overlapping = %d, want 0", got)
	}
}

func TestIntervalLength(t *testing.T) {
	iv, _ := New[int, string](4, 9, "")
	if got := iv.Length(); got != 5 {
		t.Errorf("Length() = %d, want 5", got)
	}
}

// stringTag implements DataComparer so intervals carrying it order by
// the tag rather than falling back to a reflect-based type name.
type stringTag string

func (s stringTag) CompareData(other any) int {
	o := other.(stringTag)
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	default:
		return 0
	}
}

func TestCompareUsesDataComparerWhenPresent(t *testing.T) {
	a := Interval[int, stringTag]{Begin: 1, End: 2, Data: "b"}
	b := Interval[int, stringTag]{Begin: 1, End: 2, Data: "a"}
	if compare(a, b) <= 0 {
		t.Errorf("compare(%v, %v) should be positive (b > a)", a, b)
	}
}

func TestCompareFallsBackToTypeTagThenString(t *testing.T) {
	a := Interval[int, any]{Begin: 0, End: 1, Data: 1}
	b := Interval[int, any]{Begin: 0, End: 1, Data: "x"}
	// Neither equal (different dynamic types), neither implements
	// DataComparer: ordering must still be a strict total order
	// (antisymmetric, and consistent across calls).
	if compare(a, b) == 0 {
		t.Error("compare should not report differing-type intervals as equal")
	}
	if compare(a, b) != -compare(b, a) {
		t.Error("compare is not antisymmetric across differing dynamic types")
	}
}
