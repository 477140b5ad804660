package kdforest

import "sort"

// point2 is the shared 2D point type used across this package's tests.
type point2 struct {
	X, Y float64
}

type point2Metric struct{}

func (point2Metric) Coord(v point2, dim int) float64 {
	if dim == 0 {
		return v.X
	}
	return v.Y
}

var (
	metric2 = point2Metric{}
	cmp2    = ComparatorFromMetric[point2](metric2)
)

func bruteForceNearest(points []point2, q point2) (point2, float64, bool) {
	if len(points) == 0 {
		return point2{}, 0, false
	}
	best := points[0]
	bestSq := squaredDistance[point2](metric2, q, best, 2)
	for _, p := range points[1:] {
		d := squaredDistance[point2](metric2, q, p, 2)
		if d < bestSq {
			best, bestSq = p, d
		}
	}
	return best, bestSq, true
}

func bruteForceRange(points []point2, lo, hi *point2, hiInclusive bool) []point2 {
	var out []point2
	for _, p := range points {
		if boundsMatch(cmp2, 2, p, lo, hi, hiInclusive) {
			out = append(out, p)
		}
	}
	return out
}

func sortPoints(points []point2) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})
}
