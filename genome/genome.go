// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package genome is an external collaborator of intervaltree: a
// chromosome-keyed collection of interval trees, one per chromosome,
// each independently obeying the core package's invariants. It is kept
// out of the core package so that intervaltree itself stays free of
// any genomics vocabulary.
package genome

import (
	"bytes"
	"encoding/gob"

	"github.com/cockroachdb/errors"
	intervaltree "github.com/cockroachdb/intervaltree"
)

// Index is an indexable container of interval trees keyed by
// chromosome name. Modeled on the chromosome-keyed maps threaded
// through arvados-lightning's tile library (tilelib.go, annotate.go).
type Index[T intervaltree.Number, V comparable] struct {
	trees map[string]*intervaltree.Tree[T, V]
}

// NewIndex returns an empty Index.
func NewIndex[T intervaltree.Number, V comparable]() *Index[T, V] {
	return &Index[T, V]{trees: make(map[string]*intervaltree.Tree[T, V])}
}

// Tree returns the tree for chromosome, creating an empty one on first
// use.
func (idx *Index[T, V]) Tree(chromosome string) *intervaltree.Tree[T, V] {
	t, ok := idx.trees[chromosome]
	if !ok {
		t = intervaltree.New[T, V]()
		idx.trees[chromosome] = t
	}
	return t
}

// Add inserts an interval on the named chromosome.
func (idx *Index[T, V]) Add(chromosome string, begin, end T, data V) error {
	_, err := idx.Tree(chromosome).Add(begin, end, data)
	return err
}

// At returns every interval on chromosome containing point p. It
// returns nil, not an error, for a chromosome with no recorded
// intervals.
func (idx *Index[T, V]) At(chromosome string, p T) []intervaltree.Interval[T, V] {
	t, ok := idx.trees[chromosome]
	if !ok {
		return nil
	}
	return t.At(p)
}

// Overlap returns every interval on chromosome overlapping [begin, end).
func (idx *Index[T, V]) Overlap(chromosome string, begin, end T) []intervaltree.Interval[T, V] {
	t, ok := idx.trees[chromosome]
	if !ok {
		return nil
	}
	return t.Overlap(begin, end)
}

// Chromosomes returns the name of every chromosome with at least one
// interval recorded. Order is unspecified.
func (idx *Index[T, V]) Chromosomes() []string {
	names := make([]string, 0, len(idx.trees))
	for name, t := range idx.trees {
		if t.IsEmpty() {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Len returns the total number of intervals recorded across every
// chromosome.
func (idx *Index[T, V]) Len() int {
	total := 0
	for _, t := range idx.trees {
		total += t.Len()
	}
	return total
}

// record is the gob wire representation of one interval, tagged with
// the chromosome it belongs to.
type record[T intervaltree.Number, V comparable] struct {
	Chromosome string
	Begin, End T
	Data       V
}

// MarshalIntervals gob-encodes every interval in idx as a flat,
// chromosome-tagged list, the way arvados-lightning round-trips its
// tile library through encoding/gob (gob.go, dumpgob.go). Tree shape is
// not preserved; UnmarshalIntervals rebuilds balanced trees from the
// flat list.
func MarshalIntervals[T intervaltree.Number, V comparable](idx *Index[T, V]) ([]byte, error) {
	var records []record[T, V]
	for chrom, t := range idx.trees {
		for _, iv := range t.Items() {
			records = append(records, record[T, V]{Chromosome: chrom, Begin: iv.Begin, End: iv.End, Data: iv.Data})
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return nil, errors.Wrap(err, "genome: encoding intervals")
	}
	return buf.Bytes(), nil
}

// UnmarshalIntervals reconstructs an Index from bytes produced by
// MarshalIntervals.
func UnmarshalIntervals[T intervaltree.Number, V comparable](data []byte) (*Index[T, V], error) {
	var records []record[T, V]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "genome: decoding intervals")
	}
	idx := NewIndex[T, V]()
	for _, r := range records {
		if err := idx.Add(r.Chromosome, r.Begin, r.End, r.Data); err != nil {
			return nil, err
		}
	}
	return idx, nil
}
