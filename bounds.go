package kdforest

// boundsMatch reports whether v falls within [lo, hi] on every dimension,
// where either bound may be absent (nil) and hiInclusive selects <= vs. <
// for the upper bound. Shared by KDTree and BKDTree range queries.
func boundsMatch[T any](cmp Comparator[T], dim int, v T, lo, hi *T, hiInclusive bool) bool {
	for d := 0; d < dim; d++ {
		if lo != nil && cmp.Compare(*lo, v, d) > 0 {
			return false
		}
		if hi != nil {
			c := cmp.Compare(*hi, v, d)
			if hiInclusive {
				if c < 0 {
					return false
				}
			} else if c <= 0 {
				return false
			}
		}
	}
	return true
}

// validBoundOrder reports whether lo and hi (when both present) describe a
// non-empty box, i.e. lo[d] <= hi[d] on every dimension (spec.md §4.3, §8
// item 3).
func validBoundOrder[T any](cmp Comparator[T], dim int, lo, hi *T) bool {
	if lo == nil || hi == nil {
		return true
	}
	for d := 0; d < dim; d++ {
		if cmp.Compare(*lo, *hi, d) > 0 {
			return false
		}
	}
	return true
}
