package kdforest

import (
	"sort"

	"github.com/gomlx/kdforest/internal/build"
	"github.com/gomlx/kdforest/kderrors"
)

// KDTree is a static, array-backed k-d tree over values of type T with D
// dimensions, built once from one or more input segments (spec.md §4.2).
//
// Layout invariant: for every subrange [l..r] visited during construction at
// dimension d = (level's dimension), with m = (l+r)/2, values[l..m-1] all
// compare <= values[m] on d and values[m+1..r] all compare >= values[m] on
// d, under the comparator. dirty[m] marks that some slot in [l..m-1]
// compares equal to values[m] on d, so duplicate-aware queries must also
// descend left when compare == 0 (spec.md §9, "dirty flag as a duplicate
// marker").
type KDTree[T any] struct {
	values []T
	dirty  []bool
	dim    int
	cmp    Comparator[T]
}

// NewKDTree builds a KDTree over the points contained in segments
// (concatenated in order), generic over D dimensions and a user-supplied
// Comparator. Construction fails if dim <= 0, cmp is nil, any segment is
// malformed, or the segments together hold zero points.
func NewKDTree[T any](dim int, segments []Segment[T], cmp Comparator[T], opts ...KDTreeOption) (*KDTree[T], error) {
	if dim <= 0 {
		return nil, kderrors.ErrInvalidDimension
	}
	if cmp == nil {
		return nil, kderrors.ErrNilComparator
	}
	if err := validateSegments(segments); err != nil {
		return nil, err
	}
	n := totalLength(segments)
	if n == 0 {
		return nil, kderrors.ErrEmptyPoints
	}

	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	values := make([]T, n)
	slices := make([][]T, len(segments))
	offsets := make([]int, len(segments))
	offset := 0
	for i, seg := range segments {
		slices[i] = seg.slice()
		offsets[i] = offset
		offset += seg.Length
	}
	build.CopySegments(values, slices, offsets, cfg.maxThreads)

	t := &KDTree[T]{
		values: values,
		dirty:  make([]bool, n),
		dim:    dim,
		cmp:    cmp,
	}
	coord := build.New(cfg.maxThreads, cfg.threshold)
	t.buildRange(0, n-1, 0, coord)
	return t, nil
}

// NewKDTreeFromSlice is a convenience constructor for the common case of a
// single contiguous input slice.
func NewKDTreeFromSlice[T any](dim int, values []T, cmp Comparator[T], opts ...KDTreeOption) (*KDTree[T], error) {
	return NewKDTree(dim, []Segment[T]{SegmentOf(values)}, cmp, opts...)
}

// Dim returns the number of dimensions.
func (t *KDTree[T]) Dim() int { return t.dim }

// Len returns the number of points held in the tree.
func (t *KDTree[T]) Len() int { return len(t.values) }

// buildRange recursively sort-partitions values[l..r] around its median on
// dimension d, per spec.md §4.2, optionally forking the two child
// recursions through coord.
func (t *KDTree[T]) buildRange(l, r, d int, coord *build.Coordinator) {
	if l > r {
		return
	}
	t.sortRange(l, r, d)
	m := (l + r) / 2
	first := t.firstIndexEqual(l, r, d, t.values[m])
	t.dirty[m] = first < m

	nd := (d + 1) % t.dim
	size := r - l + 1
	coord.Fork(size,
		func() { t.buildRange(l, m-1, nd, coord) },
		func() { t.buildRange(m+1, r, nd, coord) },
	)
}

// sortRangeItem couples a value with its dirty flag so the two parallel
// arrays can be stable-sorted together in one pass (spec.md §9: "Coupled
// sort of two parallel arrays").
type sortRangeItem[T any] struct {
	value T
	dirty bool
}

func (t *KDTree[T]) sortRange(l, r, d int) {
	items := make([]sortRangeItem[T], r-l+1)
	for i := l; i <= r; i++ {
		items[i-l] = sortRangeItem[T]{value: t.values[i], dirty: t.dirty[i]}
	}
	cmp := t.cmp
	sort.SliceStable(items, func(i, j int) bool {
		return cmp.Compare(items[i].value, items[j].value, d) < 0
	})
	for i := l; i <= r; i++ {
		t.values[i] = items[i-l].value
		t.dirty[i] = items[i-l].dirty
	}
}

// firstIndexEqual is FindFirstIndexOf from spec.md §4.2: a lower-bound
// binary search over the sorted subrange [l..r] for the lowest index whose
// value compares equal to pivot on dimension d, or -1 if none does.
func (t *KDTree[T]) firstIndexEqual(l, r, d int, pivot T) int {
	cmp := t.cmp
	lo, hi := l, r+1
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp.Compare(t.values[mid], pivot, d) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo <= r && cmp.Compare(t.values[lo], pivot, d) == 0 {
		return lo
	}
	return -1
}
