// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func trees(t *testing.T) (*Tree[int, string], *Tree[int, string]) {
	t.Helper()
	a, err := FromTuples([]Tuple[int, string]{
		{Begin: 0, End: 5, Data: "a0"},
		{Begin: 10, End: 15, Data: "shared"},
	})
	require.NoError(t, err)
	b, err := FromTuples([]Tuple[int, string]{
		{Begin: 10, End: 15, Data: "shared"},
		{Begin: 20, End: 25, Data: "b0"},
	})
	require.NoError(t, err)
	return a, b
}

func TestTreeUnion(t *testing.T) {
	a, b := trees(t)
	u := a.Union(b)
	require.Equal(t, 3, u.Len())
	require.NoError(t, u.Verify())
}

func TestTreeUnionUpdate(t *testing.T) {
	a, b := trees(t)
	a.UnionUpdate(b)
	require.Equal(t, 3, a.Len())
	require.NoError(t, a.Verify())
}

func TestTreeIntersection(t *testing.T) {
	a, b := trees(t)
	i := a.Intersection(b)
	require.Equal(t, 1, i.Len())
	require.NoError(t, i.Verify())
	shared, _ := New[int, string](10, 15, "shared")
	require.True(t, i.ContainsInterval(shared))
}

func TestTreeIntersectionUpdate(t *testing.T) {
	a, b := trees(t)
	a.IntersectionUpdate(b)
	require.Equal(t, 1, a.Len())
	require.NoError(t, a.Verify())
}

func TestTreeDifference(t *testing.T) {
	a, b := trees(t)
	d := a.Difference(b)
	require.Equal(t, 1, d.Len())
	aZero, _ := New[int, string](0, 5, "a0")
	require.True(t, d.ContainsInterval(aZero))
}

func TestTreeDifferenceUpdate(t *testing.T) {
	a, b := trees(t)
	a.DifferenceUpdate(b)
	require.Equal(t, 1, a.Len())
	require.NoError(t, a.Verify())
}

func TestTreeSymmetricDifference(t *testing.T) {
	a, b := trees(t)
	sym := a.SymmetricDifference(b)
	require.Equal(t, 2, sym.Len())
	require.NoError(t, sym.Verify())
	shared, _ := New[int, string](10, 15, "shared")
	require.False(t, sym.ContainsInterval(shared))
}

func TestTreeSymmetricDifferenceUpdate(t *testing.T) {
	a, b := trees(t)
	a.SymmetricDifferenceUpdate(b)
	require.Equal(t, 2, a.Len())
	require.NoError(t, a.Verify())
}
