// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeSliceSplitsStraddlingIntervals(t *testing.T) {
	tr := New[int, string]()
	_, err := tr.Add(0, 10, "a")
	require.NoError(t, err)
	tr.Slice(5)
	require.Equal(t, 2, tr.Len())
	require.NoError(t, tr.Verify())
	require.Len(t, tr.At(4), 1)
	require.Len(t, tr.At(5), 1)

	// Slicing exactly at an existing boundary is a no-op.
	tr.Slice(0)
	require.Equal(t, 2, tr.Len())
}

func TestTreeSliceWithSplitFunc(t *testing.T) {
	tr := New[int, int]()
	_, err := tr.Add(0, 10, 42)
	require.NoError(t, err)
	tr.Slice(5, func(old Interval[int, int], lower bool) int {
		if lower {
			return old.Data - 1
		}
		return old.Data + 1
	})
	require.Len(t, tr.At(2), 1)
	require.Equal(t, 41, tr.At(2)[0].Data)
	require.Equal(t, 43, tr.At(7)[0].Data)
}

func TestTreeChopRemovesAGap(t *testing.T) {
	tr := New[int, string]()
	_, err := tr.Add(0, 20, "a")
	require.NoError(t, err)
	tr.Chop(5, 10)
	require.NoError(t, tr.Verify())
	require.Equal(t, 2, tr.Len())
	require.Empty(t, tr.Overlap(5, 10))
	require.Len(t, tr.At(3), 1)
	require.Len(t, tr.At(15), 1)
}

func TestTreeChopDegenerateRangeIsNoOp(t *testing.T) {
	tr := New[int, string]()
	_, err := tr.Add(0, 20, "a")
	require.NoError(t, err)
	tr.Chop(10, 10)
	require.Equal(t, 1, tr.Len())
}

func TestTreeSplitOverlapsRemovesPartialOverlaps(t *testing.T) {
	tr := New[int, string]()
	_, err := tr.Add(0, 10, "a")
	require.NoError(t, err)
	_, err = tr.Add(5, 15, "b")
	require.NoError(t, err)
	tr.SplitOverlaps()
	require.NoError(t, tr.Verify())
	for _, iv := range tr.Items() {
		for _, other := range tr.Items() {
			if iv == other {
				continue
			}
			if iv.Overlaps(other.Begin, other.End) {
				require.True(t, iv.ContainsInterval(other) || other.ContainsInterval(iv),
					"partial overlap remains between %v and %v", iv, other)
			}
		}
	}
}

func TestTreeMergeOverlaps(t *testing.T) {
	tr := New[int, int]()
	_, err := tr.Add(0, 5, 1)
	require.NoError(t, err)
	_, err = tr.Add(3, 8, 2)
	require.NoError(t, err)
	_, err = tr.Add(20, 25, 3)
	require.NoError(t, err)
	tr.MergeOverlaps()
	require.NoError(t, tr.Verify())
	require.Equal(t, 2, tr.Len())
	merged := tr.At(4)
	require.Len(t, merged, 1)
	require.Equal(t, 0, merged[0].Begin)
	require.Equal(t, 8, merged[0].End)
	require.Equal(t, 2, merged[0].Data) // default reducer: greatest-End payload wins
}

func TestTreeMergeOverlapsWithReducer(t *testing.T) {
	tr := New[int, int]()
	_, err := tr.Add(0, 5, 10)
	require.NoError(t, err)
	_, err = tr.Add(3, 8, 20)
	require.NoError(t, err)
	tr.MergeOverlaps(func(acc, next int) int { return acc + next })
	require.Len(t, tr.Items(), 1)
	require.Equal(t, 30, tr.Items()[0].Data)
}

func TestTreeMergeEquals(t *testing.T) {
	tr := New[int, int]()
	_, err := tr.Add(0, 5, 1)
	require.NoError(t, err)
	_, err = tr.Add(0, 5, 2)
	require.NoError(t, err)
	_, err = tr.Add(10, 15, 3)
	require.NoError(t, err)
	tr.MergeEquals(func(acc, next int) int { return acc + next })
	require.NoError(t, tr.Verify())
	require.Equal(t, 2, tr.Len())
	require.Equal(t, 3, tr.At(2)[0].Data)
}
