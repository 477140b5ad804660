package kdforest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func randomPoints2(n int, seed int) []point2 {
	points := make([]point2, n)
	x, y := seed+1, seed+7
	for i := range points {
		x = (x*1103515245 + 12345) % 2147483647
		y = (y*1103515245 + 12345) % 2147483647
		points[i] = point2{float64(x % 50), float64(y % 50)}
	}
	return points
}

func TestRangeForEach_MatchesBruteForce(t *testing.T) {
	points := randomPoints2(500, 1)
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	lo, hi := point2{10, 10}, point2{30, 40}
	var got []point2
	tree.RangeForEach(func(v point2) bool {
		got = append(got, v)
		return false
	}, &lo, &hi, true)

	want := bruteForceRange(points, &lo, &hi, true)
	sortPoints(got)
	sortPoints(want)
	require.Equal(t, want, got)
}

func TestRangeForEach_EmptyWhenBoundsInverted(t *testing.T) {
	points := randomPoints2(200, 2)
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	lo, hi := point2{40, 40}, point2{10, 10}
	var count int
	tree.RangeForEach(func(point2) bool {
		count++
		return false
	}, &lo, &hi, true)
	require.Zero(t, count)
}

func TestRangeForEach_UnboundedSides(t *testing.T) {
	points := randomPoints2(300, 3)
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	hi := point2{25, 25}
	var got []point2
	tree.RangeForEach(func(v point2) bool {
		got = append(got, v)
		return false
	}, nil, &hi, true)

	want := bruteForceRange(points, nil, &hi, true)
	sortPoints(got)
	sortPoints(want)
	require.Equal(t, want, got)
}

func TestForEachMatching_Cancellation(t *testing.T) {
	points := []point2{{1, 1}, {1, 1}, {1, 1}, {2, 2}}
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	visits := 0
	cancelled := tree.ForEachMatching(point2{1, 1}, func(point2) bool {
		visits++
		return true
	})
	require.True(t, cancelled)
	require.Equal(t, 1, visits)
}

func TestContains(t *testing.T) {
	points := samplePoints()
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	require.True(t, tree.Contains(point2{6, 5}))
	require.False(t, tree.Contains(point2{100, 100}))
}

func TestTryGetFirst(t *testing.T) {
	points := randomPoints2(100, 4)
	tree, err := NewKDTreeFromSlice(2, points, cmp2)
	require.NoError(t, err)

	lo, hi := point2{0, 0}, point2{5, 5}
	v, ok := tree.TryGetFirst(&lo, &hi, true)
	if ok {
		require.True(t, boundsMatch(cmp2, 2, v, &lo, &hi, true))
	}

	far := point2{1e9, 1e9}
	_, ok = tree.TryGetFirst(&far, &far, true)
	require.False(t, ok)
}
