// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervaltree

import (
	"github.com/cockroachdb/errors"
)

// ErrInvalidInterval is returned (or wrapped) whenever an operation would
// construct or insert an interval with Begin >= End. A null interval is
// never stored.
var ErrInvalidInterval = errors.New("intervaltree: invalid interval: begin must be strictly less than end")

// ErrNotFound is returned by Remove when the given interval is not a
// member of the tree. Discard swallows this error.
var ErrNotFound = errors.New("intervaltree: interval not found")

// invalidIntervalError wraps ErrInvalidInterval with the offending bounds,
// so callers checking errors.Is(err, ErrInvalidInterval) still succeed
// while getting a descriptive message.
func invalidIntervalError[T Number](begin, end T) error {
	return errors.Mark(errors.Newf("intervaltree: invalid interval [%v, %v): begin must be < end", begin, end), ErrInvalidInterval)
}

// notFoundError wraps ErrNotFound with the missing interval's bounds.
func notFoundError[T Number, V comparable](iv Interval[T, V]) error {
	return errors.Mark(errors.Newf("intervaltree: interval %s not found", iv), ErrNotFound)
}

// invariantViolation constructs an InvariantViolation-class error for
// Verify. These are never expected in normal operation; if one surfaces
// it indicates a bug in the tree implementation itself.
func invariantViolation(format string, args ...interface{}) error {
	return errors.AssertionFailedf(format, args...)
}
