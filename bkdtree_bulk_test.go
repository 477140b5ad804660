package kdforest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertMany_SmallListDelegatesToSequentialInsert(t *testing.T) {
	points := randomPoints2(6, 71)

	small, err := NewBKDTree[point2](2, cmp2, WithBlockSize(16))
	require.NoError(t, err)
	require.NoError(t, small.InsertMany(points))

	sequential, err := NewBKDTree[point2](2, cmp2, WithBlockSize(16))
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, sequential.Insert(p))
	}

	require.Equal(t, sequential.Count(), small.Count())
	a, b := small.GetAll(), sequential.GetAll()
	sortPoints(a)
	sortPoints(b)
	require.Equal(t, b, a)
}

// TestInsertMany_BulkPathMatchesSequentialMultiset exercises the "fold every
// level" bulk recomputation (Open Question Resolution #2): whatever the
// insertion path, the tree must hold exactly the same multiset of points.
func TestInsertMany_BulkPathMatchesSequentialMultiset(t *testing.T) {
	points := randomPoints2(500, 81)

	bulk, err := NewBKDTree[point2](2, cmp2, WithBlockSize(8))
	require.NoError(t, err)
	require.NoError(t, bulk.InsertMany(points))

	sequential, err := NewBKDTree[point2](2, cmp2, WithBlockSize(8))
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, sequential.Insert(p))
	}

	require.Equal(t, sequential.Count(), bulk.Count())
	a, b := bulk.GetAll(), sequential.GetAll()
	sortPoints(a)
	sortPoints(b)
	require.Equal(t, b, a)
}

// TestInsertMany_InterleavedWithInsert checks that mixing single inserts and
// bulk inserts still leaves the tree in a valid binary-counter layout and
// that every query answer matches a brute-force scan.
func TestInsertMany_InterleavedWithInsert(t *testing.T) {
	tree, err := NewBKDTree[point2](2, cmp2, WithBlockSize(4))
	require.NoError(t, err)

	var all []point2
	batch1 := randomPoints2(10, 91)
	require.NoError(t, tree.Insert(batch1[0]))
	all = append(all, batch1[0])

	batch2 := randomPoints2(200, 92)
	require.NoError(t, tree.InsertMany(batch2))
	all = append(all, batch2...)

	require.NoError(t, tree.Insert(batch1[1]))
	all = append(all, batch1[1])

	require.Equal(t, len(all), tree.Count())

	tree.ForEachLevel(func(level, count int) bool {
		require.Equal(t, tree.BlockSize()<<uint(level), count)
		return false
	})

	lo, hi := point2{5, 5}, point2{40, 40}
	var got []point2
	tree.RangeForEach(func(v point2) bool { got = append(got, v); return false }, &lo, &hi, true)
	want := bruteForceRange(all, &lo, &hi, true)
	sortPoints(got)
	sortPoints(want)
	require.Equal(t, want, got)
}
