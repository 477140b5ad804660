// Package build implements the parallel-build coordinator used by KDTree
// construction and BKDTree level rebuilds (spec.md §5). It is a classic
// fork-join with an atomic live-worker counter throttling how many
// recursive subtree builds are offloaded to goroutines, grounded on the
// errgroup.WithContext fork-join shape used throughout
// syntax-syndicate-plakar-backup-platform/snapshot/packer.go.
package build

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the minimum subrange size for forking a task,
// per spec.md §5 ("recommended: 4096; must be tunable in the 512-8192
// range").
const DefaultParallelThreshold = 4096

// MinParallelThreshold and MaxParallelThreshold bound the tunable range
// spec.md §5 requires.
const (
	MinParallelThreshold = 512
	MaxParallelThreshold = 8192
)

// Coordinator throttles how many concurrent subtree builds may be in flight
// at once, via an atomic counter bounded by MaxThreads. It is safe for
// concurrent use by multiple in-flight Fork calls.
type Coordinator struct {
	maxThreads int
	threshold  int
	live       atomic.Int32
}

// New creates a Coordinator. maxThreads <= 1 disables forking entirely
// (Fork always runs sequentially). threshold is clamped to
// [MinParallelThreshold, MaxParallelThreshold].
func New(maxThreads, threshold int) *Coordinator {
	if maxThreads < 1 {
		maxThreads = 1
	}
	if threshold < MinParallelThreshold {
		threshold = MinParallelThreshold
	}
	if threshold > MaxParallelThreshold {
		threshold = MaxParallelThreshold
	}
	return &Coordinator{maxThreads: maxThreads, threshold: threshold}
}

// MaxThreads returns the configured worker cap.
func (c *Coordinator) MaxThreads() int { return c.maxThreads }

// Threshold returns the configured parallel-construction threshold.
func (c *Coordinator) Threshold() int { return c.threshold }

// Fork runs left and right, the two independent recursive subtree builds
// spec.md §4.2 describes. When size meets the parallel threshold and a
// worker slot is available, right runs on the calling goroutine while left
// is forked onto an errgroup worker; both are joined before Fork returns.
// Otherwise both run sequentially on the caller, in left-then-right order.
func (c *Coordinator) Fork(size int, left, right func()) {
	if c.maxThreads > 1 && size >= c.threshold && c.tryAcquire() {
		defer c.release()
		var g errgroup.Group
		g.Go(func() error {
			left()
			return nil
		})
		right()
		_ = g.Wait()
		return
	}
	left()
	right()
}

// tryAcquire claims one worker slot via compare-and-swap, uncontended in the
// common case, and returns false if the cap is already saturated.
func (c *Coordinator) tryAcquire() bool {
	for {
		cur := c.live.Load()
		if cur >= int32(c.maxThreads) {
			return false
		}
		if c.live.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (c *Coordinator) release() {
	c.live.Add(-1)
}

// CopySegments copies each segment's slice into the corresponding window of
// dst, in order. Disjoint destination ranges allow the per-segment copies to
// run concurrently across up to maxThreads workers when there is more than
// one segment (spec.md §4.2, §5).
func CopySegments[T any](dst []T, segments [][]T, offsets []int, maxThreads int) {
	if len(segments) <= 1 || maxThreads <= 1 {
		for i, seg := range segments {
			copy(dst[offsets[i]:offsets[i]+len(seg)], seg)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(maxThreads)
	for i, seg := range segments {
		off, s := offsets[i], seg
		g.Go(func() error {
			copy(dst[off:off+len(s)], s)
			return nil
		})
	}
	_ = g.Wait()
}
