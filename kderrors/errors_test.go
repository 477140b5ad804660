package kderrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrEmptyPoints, ErrInvalidDimension, ErrNilComparator, ErrNilMetric,
		ErrBlockSizeTooSmall, ErrCapacityExceeded, ErrConcurrentModification,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "sentinel %d should not match sentinel %d", i, j)
		}
	}
}

func TestWrapfPreservesCause(t *testing.T) {
	wrapped := Wrapf(ErrEmptyPoints, "building level %d", 3)
	require.ErrorIs(t, wrapped, ErrEmptyPoints)
	require.Contains(t, wrapped.Error(), "building level 3")
}

func TestSegmentShapef(t *testing.T) {
	err := SegmentShapef(2, 5, 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "offset=2")
	require.Contains(t, err.Error(), "length=5")
	require.Contains(t, err.Error(), "backing_len=3")
}
