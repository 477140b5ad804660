// Command kdbench builds a KDTree and a BKDTree over random 3D points and
// reports construction and query timings, grounded on the flag-driven,
// mode-dispatching shape of Geek0x0-pdf's cmd/pdfcli.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gomlx/kdforest"
)

// point3 is a fixed 3-dimensional point type; point3Metric is its
// kdforest.Metric.
type point3 [3]float64

type point3Metric struct{}

func (point3Metric) Coord(v point3, dim int) float64 { return v[dim] }

func main() {
	n := flag.Int("n", 200_000, "number of random points to index")
	queries := flag.Int("queries", 1000, "number of nearest-neighbor queries to run")
	blockSize := flag.Int("block-size", kdforest.DefaultBlockSize, "BKDTree base block size")
	parallel := flag.Bool("parallel", true, "enable parallel construction")
	verbose := flag.Bool("verbose", false, "enable trace logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "kdbench"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
		kdforest.SetLogger(logger)
	}

	points := randomPoints(*n)
	metric := point3Metric{}

	logger.Info("building static index", "n", *n, "parallel", *parallel)
	start := time.Now()
	static, err := kdforest.NewMetricKDTreeFromSlice(3, points, metric, kdforest.WithParallel(*parallel))
	if err != nil {
		logger.Fatal("build KDTree", "err", err)
	}
	logger.Info("static index built", "elapsed", time.Since(start))

	logger.Info("building growing index", "block_size", *blockSize)
	start = time.Now()
	growing, err := kdforest.NewMetricBKDTree[point3](3, metric, kdforest.WithBlockSize(*blockSize), kdforest.WithBKDParallel(*parallel))
	if err != nil {
		logger.Fatal("build BKDTree", "err", err)
	}
	if err := growing.InsertMany(points); err != nil {
		logger.Fatal("populate BKDTree", "err", err)
	}
	logger.Info("growing index built", "elapsed", time.Since(start), "count", growing.Count())

	queryPoints := randomPoints(*queries)
	start = time.Now()
	for _, q := range queryPoints {
		if _, _, ok := static.NearestNeighbor(q); !ok {
			logger.Fatal("nearest neighbor returned none on non-empty tree")
		}
	}
	staticElapsed := time.Since(start)

	start = time.Now()
	for _, q := range queryPoints {
		if _, _, ok := growing.NearestNeighbor(q); !ok {
			logger.Fatal("nearest neighbor returned none on non-empty tree")
		}
	}
	growingElapsed := time.Since(start)

	fmt.Printf("static  KDTree: %d points, %d NN queries in %s (%s/query)\n",
		static.Len(), *queries, staticElapsed, staticElapsed/time.Duration(*queries))
	fmt.Printf("growing BKDTree: %d points, %d NN queries in %s (%s/query)\n",
		growing.Count(), *queries, growingElapsed, growingElapsed/time.Duration(*queries))
}

func randomPoints(n int) []point3 {
	rng := rand.New(rand.NewSource(1))
	points := make([]point3, n)
	for i := range points {
		points[i] = point3{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	return points
}
