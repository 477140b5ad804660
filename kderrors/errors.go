// Package kderrors defines the boundary error kinds raised by kdforest, per
// spec.md §7. Errors are built with github.com/pkg/errors so that a wrapped
// cause survives and errors.Is/errors.Cause keep working across package
// boundaries, matching the error style already used by geometry/kdtree.go in
// the repository this package was adapted from.
package kderrors

import "github.com/pkg/errors"

var (
	// ErrEmptyPoints indicates that a static KDTree was asked to build from
	// zero points (spec.md §4.2: "Empty input... must fail").
	ErrEmptyPoints = errors.New("kdforest: no points provided")

	// ErrInvalidDimension indicates D <= 0.
	ErrInvalidDimension = errors.New("kdforest: dimension must be at least 1")

	// ErrNilComparator indicates a tree was constructed without a comparator.
	ErrNilComparator = errors.New("kdforest: comparator must not be nil")

	// ErrNilMetric indicates a metric variant was constructed without a metric.
	ErrNilMetric = errors.New("kdforest: metric must not be nil")

	// ErrBlockSizeTooSmall indicates block_size < 2 was requested for a BKDTree.
	ErrBlockSizeTooSmall = errors.New("kdforest: block size must be at least 2")

	// ErrCapacityExceeded indicates a BKDTree would need a level index above
	// 32 (levels 0..32 are supported).
	ErrCapacityExceeded = errors.New("kdforest: bkdtree level capacity exceeded")

	// ErrConcurrentModification indicates a mutating call arrived while a read
	// traversal of the same BKDTree was still in progress.
	ErrConcurrentModification = errors.New("kdforest: concurrent modification during active iteration")
)

// SegmentShapef reports a Segment whose offset+length overruns its backing
// slice.
func SegmentShapef(offset, length, backingLen int) error {
	return errors.Errorf("kdforest: segment shape invalid: offset=%d length=%d backing_len=%d", offset, length, backingLen)
}

// Wrapf attaches additional context to an existing sentinel error while
// preserving it for errors.Is / errors.Cause.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
