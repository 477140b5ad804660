package kdforest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegment_ValidateRejectsOutOfBounds(t *testing.T) {
	values := []int{1, 2, 3}

	require.NoError(t, Segment[int]{Values: values, Offset: 0, Length: 3}.validate())
	require.NoError(t, Segment[int]{Values: values, Offset: 1, Length: 2}.validate())

	require.Error(t, Segment[int]{Values: values, Offset: 0, Length: 4}.validate())
	require.Error(t, Segment[int]{Values: values, Offset: -1, Length: 2}.validate())
	require.Error(t, Segment[int]{Values: values, Offset: 2, Length: -1}.validate())
}

func TestSegment_SliceAndTotalLength(t *testing.T) {
	values := []int{10, 20, 30, 40}
	seg := Segment[int]{Values: values, Offset: 1, Length: 2}
	require.Equal(t, []int{20, 30}, seg.slice())

	segments := []Segment[int]{SegmentOf(values[:2]), seg}
	require.Equal(t, 4, totalLength(segments))
}

func TestValidateSegments(t *testing.T) {
	values := []int{1, 2, 3}
	good := []Segment[int]{SegmentOf(values)}
	require.NoError(t, validateSegments(good))

	bad := []Segment[int]{{Values: values, Offset: 2, Length: 5}}
	require.Error(t, validateSegments(bad))
}
