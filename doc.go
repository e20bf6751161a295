// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package intervaltree implements a mutable, self-balancing interval
// tree: a container of half-open intervals [begin, end), each tagged
// with an optional payload, supporting point, overlap, and envelopment
// queries alongside insertion, deletion, and structural restructuring
// (chop, slice, merge).
//
// The tree is a binary search tree keyed on interval endpoints and kept
// height-balanced with AVL rotations. Unlike a plain BST over scalar
// keys, each node owns a set of intervals ("s_center") that all contain
// the node's pivot coordinate, so a single vertex can represent many
// overlapping intervals without violating the BST shape invariant.
//
// The tree is not safe for concurrent mutation; callers sharing a tree
// across goroutines must provide their own synchronization.
package intervaltree
