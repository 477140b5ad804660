package kdforest

import (
	"runtime"

	"github.com/gomlx/kdforest/internal/build"
)

// engineConfig holds the parallel-build knobs shared by KDTree and BKDTree
// construction (spec.md §6: max_threads, parallel convenience,
// parallel_construction_threshold). The BKDTree block size lives in
// bkdConfig.
type engineConfig struct {
	maxThreads int
	threshold  int
}

func defaultEngineConfig() engineConfig {
	return engineConfig{maxThreads: 1, threshold: build.DefaultParallelThreshold}
}

func clampThreads(n int) int {
	if n < 1 {
		return 1
	}
	if max := runtime.NumCPU(); n > max {
		return max
	}
	return n
}

// KDTreeOption configures KDTree / MetricKDTree construction.
type KDTreeOption func(*engineConfig)

// WithMaxThreads sets the effective parallelism cap, clamped to
// [1, runtime.NumCPU()].
func WithMaxThreads(n int) KDTreeOption {
	return func(c *engineConfig) { c.maxThreads = clampThreads(n) }
}

// WithParallel is a convenience equivalent to WithMaxThreads(runtime.NumCPU())
// when enabled is true, or WithMaxThreads(1) when false.
func WithParallel(enabled bool) KDTreeOption {
	return func(c *engineConfig) {
		if enabled {
			c.maxThreads = runtime.NumCPU()
		} else {
			c.maxThreads = 1
		}
	}
}

// WithParallelThreshold sets the minimum subrange size for forking a
// recursive build task (spec.md §5, default build.DefaultParallelThreshold).
func WithParallelThreshold(n int) KDTreeOption {
	return func(c *engineConfig) { c.threshold = n }
}

// DefaultBlockSize is the base-block capacity used when BKDTree is
// constructed without WithBlockSize (spec.md §6).
const DefaultBlockSize = 128

// bkdConfig holds BKDTree-specific construction options.
type bkdConfig struct {
	engineConfig
	blockSize int
}

func defaultBKDConfig() bkdConfig {
	return bkdConfig{engineConfig: defaultEngineConfig(), blockSize: DefaultBlockSize}
}

// BKDTreeOption configures BKDTree / MetricBKDTree construction.
type BKDTreeOption func(*bkdConfig)

// WithBlockSize sets the base-block capacity B (must be >= 2, spec.md §6).
func WithBlockSize(n int) BKDTreeOption {
	return func(c *bkdConfig) { c.blockSize = n }
}

// WithBKDMaxThreads sets the effective parallelism cap for level rebuilds.
func WithBKDMaxThreads(n int) BKDTreeOption {
	return func(c *bkdConfig) { c.maxThreads = clampThreads(n) }
}

// WithBKDParallel is the BKDTree analogue of WithParallel.
func WithBKDParallel(enabled bool) BKDTreeOption {
	return func(c *bkdConfig) {
		if enabled {
			c.maxThreads = runtime.NumCPU()
		} else {
			c.maxThreads = 1
		}
	}
}

// WithBKDParallelThreshold is the BKDTree analogue of WithParallelThreshold.
func WithBKDParallelThreshold(n int) BKDTreeOption {
	return func(c *bkdConfig) { c.threshold = n }
}

func (c engineConfig) kdTreeOptions() []KDTreeOption {
	return []KDTreeOption{WithMaxThreads(c.maxThreads), WithParallelThreshold(c.threshold)}
}
