package kdforest

import "github.com/gomlx/kdforest/kderrors"

// bulkInsertFanout is the multiple of the block size up to which InsertMany
// uses repeated single inserts: a list of at most bulkInsertFanout*blockSize
// values goes through the carry chain, and only a longer one switches to the
// whole-tree binary-counter recomputation, since for short lists the carry
// chain is already about as cheap as rebuilding from scratch.
const bulkInsertFanout = 2

// InsertMany adds every value in list to the tree. For small lists it
// degrades to repeated Insert calls; for larger ones it recomputes the
// entire binary-counter layout from scratch in one pass (spec.md §4.4,
// "Bulk insert via canonical binary-counter recomputation").
//
// Every existing level (and the base block) is folded into the new layout
// rather than only the minimal prefix needed to absorb len(list): this is
// simpler, cannot miscompute the fold boundary, and is asymptotically
// equivalent, since every query here depends only on which points occupy
// each level, not the sequence of inserts that put them there.
func (t *BKDTree[T]) InsertMany(list []T) error {
	if len(list) == 0 {
		return nil
	}
	if t.enumerating.Load() > 0 {
		return kderrors.ErrConcurrentModification
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(list) <= bulkInsertFanout*t.blockSize {
		for _, v := range list {
			if err := t.insertLocked(v); err != nil {
				return err
			}
		}
		return nil
	}

	pending := t.bufPool.Get(len(list) + len(t.base) + t.count)
	pending = append(pending, list...)
	pending = append(pending, t.base...)
	for i := range t.levels {
		if t.levels[i] != nil {
			pending = append(pending, t.levels[i].GetAll()...)
			t.levels[i] = nil
		}
	}

	total := len(pending)
	usedBits := total / t.blockSize
	if usedBits>>maxBKDLevels != 0 {
		return kderrors.ErrCapacityExceeded
	}

	cursor := 0
	for i := 0; i < maxBKDLevels; i++ {
		if usedBits&(1<<uint(i)) == 0 {
			continue
		}
		levelSize := t.blockSize << uint(i)
		segment := pending[cursor : cursor+levelSize]
		tree, err := NewKDTree(t.dim, []Segment[T]{SegmentOf(segment)}, t.cmp, t.cfg.kdTreeOptions()...)
		if err != nil {
			return err
		}
		t.levels[i] = tree
		cursor += levelSize
	}

	remainder := total - cursor
	t.base = make([]T, remainder, t.blockSize)
	copy(t.base, pending[cursor:])
	t.bufPool.Put(pending)
	t.count = total
	trace("bkdtree: bulk-inserted %d points, total now %d, base holds %d", len(list), total, remainder)
	return nil
}
