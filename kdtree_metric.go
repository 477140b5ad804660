package kdforest

import "github.com/gomlx/kdforest/kderrors"

// MetricKDTree is a KDTree whose comparator is derived from a Metric,
// additionally supporting nearest-neighbor queries (spec.md §4.1, §4.3).
type MetricKDTree[T any] struct {
	*KDTree[T]
	metric Metric[T]
}

// NewMetricKDTree builds a MetricKDTree over the points in segments, using
// the comparator induced by metric.
func NewMetricKDTree[T any](dim int, segments []Segment[T], metric Metric[T], opts ...KDTreeOption) (*MetricKDTree[T], error) {
	if metric == nil {
		return nil, kderrors.ErrNilMetric
	}
	tree, err := NewKDTree(dim, segments, ComparatorFromMetric(metric), opts...)
	if err != nil {
		return nil, err
	}
	return &MetricKDTree[T]{KDTree: tree, metric: metric}, nil
}

// NewMetricKDTreeFromSlice is the single-segment convenience form of
// NewMetricKDTree.
func NewMetricKDTreeFromSlice[T any](dim int, values []T, metric Metric[T], opts ...KDTreeOption) (*MetricKDTree[T], error) {
	return NewMetricKDTree(dim, []Segment[T]{SegmentOf(values)}, metric, opts...)
}

// nnState threads the current best match through a nearest-neighbor
// traversal so it can be shared across a BKDTree's base block and multiple
// KDTree levels (spec.md §4.5: "returns it at the end (equivalent to doing
// NN independently over each and taking the minimum, but faster because
// pruning uses the global best)").
type nnState[T any] struct {
	found  bool
	value  T
	distSq float64
}

func (s *nnState[T]) consider(v T, distSq float64) {
	if !s.found || distSq < s.distSq {
		s.found = true
		s.value = v
		s.distSq = distSq
	}
}

// NearestNeighbor returns the stored value closest to q and the squared
// Euclidean distance to it, or ok=false if the tree is empty.
func (t *MetricKDTree[T]) NearestNeighbor(q T) (value T, squaredDist float64, ok bool) {
	if t.Len() == 0 {
		return value, 0, false
	}
	best := &nnState[T]{}
	nearestNeighborInto(t.KDTree, t.metric, 0, t.Len()-1, 0, q, best)
	return best.value, best.distSq, best.found
}

// nearestNeighborInto implements the standard kd-tree nearest-neighbor
// descent: visit the near side first (the side q's coordinate falls on),
// track the best squared distance seen so far, and only visit the far side
// if its bounding hyperplane could still contain a closer point — or
// unconditionally when the dirty flag says duplicates of the pivot may be
// sitting on the far side despite comparing equal on d (spec.md §4.3). It is
// a free function, not a method, so a BKDTree's base block and every level
// can share one best state across the whole forest (spec.md §4.5).
func nearestNeighborInto[T any](t *KDTree[T], metric Metric[T], l, r, d int, q T, best *nnState[T]) {
	if l > r {
		return
	}
	m := (l + r) / 2
	best.consider(t.values[m], squaredDistance[T](metric, q, t.values[m], t.dim))

	c := t.cmp.Compare(q, t.values[m], d)
	axis := metric.Coord(t.values[m], d) - metric.Coord(q, d)
	axisSq := axis * axis
	nd := (d + 1) % t.dim

	var near, far func()
	if c >= 0 {
		near = func() { nearestNeighborInto(t, metric, m+1, r, nd, q, best) }
		far = func() { nearestNeighborInto(t, metric, l, m-1, nd, q, best) }
	} else {
		near = func() { nearestNeighborInto(t, metric, l, m-1, nd, q, best) }
		far = func() { nearestNeighborInto(t, metric, m+1, r, nd, q, best) }
	}
	near()
	if axisSq < best.distSq || (t.dirty[m] && c == 0) {
		far()
	}
}

// MetricBKDTree is a BKDTree whose comparator is derived from a Metric,
// additionally supporting nearest-neighbor queries across the base block and
// every level (spec.md §4.4, §4.5).
type MetricBKDTree[T any] struct {
	*BKDTree[T]
	metric Metric[T]
}

// NewMetricBKDTree creates an empty MetricBKDTree over D dimensions.
func NewMetricBKDTree[T any](dim int, metric Metric[T], opts ...BKDTreeOption) (*MetricBKDTree[T], error) {
	if metric == nil {
		return nil, kderrors.ErrNilMetric
	}
	tree, err := NewBKDTree[T](dim, ComparatorFromMetric(metric), opts...)
	if err != nil {
		return nil, err
	}
	return &MetricBKDTree[T]{BKDTree: tree, metric: metric}, nil
}

// NearestNeighbor returns the stored value closest to q across the base
// block and every level, and the squared Euclidean distance to it, or
// ok=false if the tree is empty. Pruning shares one best-so-far state across
// the whole forest, so it is equivalent to — but faster than — running NN
// independently per level and taking the minimum (spec.md §4.5).
func (t *MetricBKDTree[T]) NearestNeighbor(q T) (value T, squaredDist float64, ok bool) {
	t.beginRead()
	defer t.endRead()

	if t.Count() == 0 {
		return value, 0, false
	}

	best := &nnState[T]{}
	for _, v := range t.base {
		best.consider(v, squaredDistance[T](t.metric, q, v, t.dim))
	}
	for _, lvl := range t.levels {
		if lvl == nil {
			continue
		}
		nearestNeighborInto(lvl, t.metric, 0, lvl.Len()-1, 0, q, best)
	}
	return best.value, best.distSq, best.found
}
