package kdforest

import (
	"sync"
	"sync/atomic"

	"github.com/gomlx/kdforest/internal/segbuf"
	"github.com/gomlx/kdforest/kderrors"
)

// maxBKDLevels bounds the binary-counter cascade: level i holds exactly
// blockSize*2^i items when present, so level 32 alone already represents
// 2^32 base blocks. Carrying past it is treated as capacity
// exhaustion rather than allocating an unbounded levels array (spec.md §4.4,
// "Non-goals: no dynamic dimensionality" and §7 CapacityExceeded).
const maxBKDLevels = 33

// BKDTree is a growing multidimensional index built from a base block plus a
// binary-counter cascade of doubling KDTree levels (spec.md §4.4): level i,
// when present, holds exactly blockSize*2^i points. Inserting into a full
// base block carries into level 0, merging into level 1 on collision, and so
// on, mirroring binary-counter increment.
type BKDTree[T any] struct {
	dim       int
	cmp       Comparator[T]
	blockSize int
	cfg       engineConfig

	mu      sync.Mutex
	base    []T
	levels  [maxBKDLevels]*KDTree[T]
	count   int
	bufPool *segbuf.Pool[T]

	enumerating atomic.Int32
}

// NewBKDTree creates an empty BKDTree over D dimensions, using cmp to order
// values along each axis.
func NewBKDTree[T any](dim int, cmp Comparator[T], opts ...BKDTreeOption) (*BKDTree[T], error) {
	if dim <= 0 {
		return nil, kderrors.ErrInvalidDimension
	}
	if cmp == nil {
		return nil, kderrors.ErrNilComparator
	}
	cfg := defaultBKDConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.blockSize < 2 {
		return nil, kderrors.ErrBlockSizeTooSmall
	}
	return &BKDTree[T]{
		dim:       dim,
		cmp:       cmp,
		blockSize: cfg.blockSize,
		cfg:       cfg.engineConfig,
		base:      make([]T, 0, cfg.blockSize),
		bufPool:   segbuf.New[T](),
	}, nil
}

// Dim returns the number of dimensions.
func (t *BKDTree[T]) Dim() int { return t.dim }

// Count returns the total number of points held across the base block and
// every level.
func (t *BKDTree[T]) Count() int { return t.count }

// IsEmpty reports whether the tree holds no points.
func (t *BKDTree[T]) IsEmpty() bool { return t.Count() == 0 }

// BlockSize returns the configured base-block capacity B.
func (t *BKDTree[T]) BlockSize() int { return t.blockSize }

// beginRead and endRead bracket a traversal with the enumeration counter
// that Insert/InsertMany check to reject mutation during iteration
// (spec.md §7, ErrConcurrentModification).
func (t *BKDTree[T]) beginRead() { t.enumerating.Add(1) }
func (t *BKDTree[T]) endRead()   { t.enumerating.Add(-1) }

// Insert adds v to the tree, carrying the base block into the level
// cascade when it overflows (spec.md §4.4). It fails with
// ErrConcurrentModification if a traversal is in progress, or with
// ErrCapacityExceeded if the cascade would need a level beyond the
// supported range.
func (t *BKDTree[T]) Insert(v T) error {
	if t.enumerating.Load() > 0 {
		return kderrors.ErrConcurrentModification
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(v)
}

// insertLocked performs one carry-propagating insert. Callers must hold
// t.mu and must already have checked the enumeration counter.
//
// The base block carries lazily: a full base (len(base) == blockSize) is
// only flushed when the *next* insert arrives, at which point the existing
// B items are carried into the level cascade and the incoming value starts
// a fresh base block (spec.md §4.4, scenario S4 — after the 2nd insert with
// B=2, b is left at 2 with no levels yet; only the 3rd insert triggers the
// carry). Carrying eagerly as soon as the base reaches B would never let b
// rest at B, which contradicts S4's pinned intermediate states.
func (t *BKDTree[T]) insertLocked(v T) error {
	if len(t.base) < t.blockSize {
		t.base = append(t.base, v)
		t.count++
		return nil
	}

	pending := t.base
	t.base = make([]T, 0, t.blockSize)
	if err := t.carryLocked(pending); err != nil {
		t.base = pending
		return err
	}
	t.base = append(t.base, v)
	t.count++
	return nil
}

// carryLocked folds pending (whose length is blockSize*2^i0 for some i0,
// almost always 0) into the level cascade: it occupies the first empty
// level it finds, merging with and clearing every full level below it along
// the way, exactly like incrementing a binary counter. Callers must hold
// t.mu.
func (t *BKDTree[T]) carryLocked(pending []T) error {
	pooled := false
	i := 0
	for {
		if i >= maxBKDLevels {
			return kderrors.ErrCapacityExceeded
		}
		if t.levels[i] == nil {
			tree, err := NewKDTree(t.dim, []Segment[T]{SegmentOf(pending)}, t.cmp, t.cfg.kdTreeOptions()...)
			if pooled {
				t.bufPool.Put(pending)
			}
			if err != nil {
				return err
			}
			t.levels[i] = tree
			trace("bkdtree: settled %d points into level %d", len(pending), i)
			return nil
		}
		merged := t.bufPool.Get(len(pending) + t.levels[i].Len())
		merged = append(merged, pending...)
		merged = append(merged, t.levels[i].GetAll()...)
		if pooled {
			t.bufPool.Put(pending)
		}
		pooled = true
		t.levels[i] = nil
		pending = merged
		i++
	}
}

// Contains reports whether q matches some stored value on all dimensions.
func (t *BKDTree[T]) Contains(q T) bool {
	found := false
	t.ForEachMatching(q, func(T) bool {
		found = true
		return true
	})
	return found
}

// Get returns every stored value equal to q on all dimensions, with
// multiplicity preserved.
func (t *BKDTree[T]) Get(q T) []T {
	var out []T
	t.ForEachMatching(q, func(v T) bool {
		out = append(out, v)
		return false
	})
	return out
}

// ForEachMatching visits every stored value equal to q on all dimensions:
// the base block via a linear scan, then each present level via its own
// equality descent. f returns true to cancel.
func (t *BKDTree[T]) ForEachMatching(q T, f func(T) bool) bool {
	t.beginRead()
	defer t.endRead()

	for _, v := range t.base {
		if equalOnAllDims(t.cmp, q, v, t.dim) {
			if f(v) {
				return true
			}
		}
	}
	for _, lvl := range t.levels {
		if lvl == nil {
			continue
		}
		if lvl.ForEachMatching(q, f) {
			return true
		}
	}
	return false
}

// ForEach visits every stored value, base block first then each level in
// ascending order. f returns true to cancel.
func (t *BKDTree[T]) ForEach(f func(T) bool) bool {
	t.beginRead()
	defer t.endRead()

	for _, v := range t.base {
		if f(v) {
			return true
		}
	}
	for _, lvl := range t.levels {
		if lvl == nil {
			continue
		}
		if lvl.ForEach(f) {
			return true
		}
	}
	return false
}

// GetAll returns a copy of every stored value.
func (t *BKDTree[T]) GetAll() []T {
	out := make([]T, 0, t.Count())
	t.ForEach(func(v T) bool {
		out = append(out, v)
		return false
	})
	return out
}

// RangeForEach visits every stored value within [lo, hi] (either bound may
// be nil to mean "unbounded"). If both bounds are present and lo[d] > hi[d]
// on any dimension, it returns immediately with no matches. f returns true
// to cancel.
func (t *BKDTree[T]) RangeForEach(f func(T) bool, lo, hi *T, hiInclusive bool) bool {
	if !validBoundOrder(t.cmp, t.dim, lo, hi) {
		return false
	}

	t.beginRead()
	defer t.endRead()

	for _, v := range t.base {
		if boundsMatch(t.cmp, t.dim, v, lo, hi, hiInclusive) {
			if f(v) {
				return true
			}
		}
	}
	for _, lvl := range t.levels {
		if lvl == nil {
			continue
		}
		if lvl.RangeForEach(f, lo, hi, hiInclusive) {
			return true
		}
	}
	return false
}

// ForEachLevel visits every occupied level index i, in ascending order,
// along with the number of points S[i] holds (always exactly
// blockSize*2^i — spec.md §8 item 5). It is a read-only diagnostic for
// introspecting the binary-counter layout directly, rather than only
// indirectly through query results; it is not part of any query path. f
// returns true to cancel; ForEachLevel itself returns true iff f ever
// returned true.
func (t *BKDTree[T]) ForEachLevel(f func(level int, count int) bool) bool {
	t.beginRead()
	defer t.endRead()

	for i, lvl := range t.levels {
		if lvl == nil {
			continue
		}
		if f(i, lvl.Len()) {
			return true
		}
	}
	return false
}

// BaseLen returns how many points currently sit in the unstructured base
// block (spec.md §4.4's b), i.e. the count law's residue not yet folded
// into any level.
func (t *BKDTree[T]) BaseLen() int {
	t.beginRead()
	defer t.endRead()
	return len(t.base)
}

// TryGetFirst returns the first value encountered within [lo, hi] (no global
// ordering guarantee across values), or the zero value and false if none
// match.
func (t *BKDTree[T]) TryGetFirst(lo, hi *T, hiInclusive bool) (T, bool) {
	var result T
	found := false
	t.RangeForEach(func(v T) bool {
		result = v
		found = true
		return true
	}, lo, hi, hiInclusive)
	return result, found
}
