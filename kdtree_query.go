package kdforest

// Contains reports whether q matches some stored value on all dimensions
// (spec.md §4.3).
func (t *KDTree[T]) Contains(q T) bool {
	found := false
	t.forEachMatchingRange(0, t.Len()-1, 0, q, func(T) bool {
		found = true
		return true
	})
	return found
}

// Get returns every stored value equal to q on all dimensions, with
// multiplicity preserved (spec.md §8 item 2).
func (t *KDTree[T]) Get(q T) []T {
	var out []T
	t.forEachMatchingRange(0, t.Len()-1, 0, q, func(v T) bool {
		out = append(out, v)
		return false
	})
	return out
}

// ForEachMatching visits every stored value equal to q on all dimensions,
// calling f for each. f returns true to cancel; ForEachMatching itself
// returns true iff f ever returned true.
func (t *KDTree[T]) ForEachMatching(q T, f func(T) bool) bool {
	return t.forEachMatchingRange(0, t.Len()-1, 0, q, f)
}

// forEachMatchingRange implements the equality descent of spec.md §4.3:
// compare(q, values[m], d) selects the primary side, and the dirty flag
// forces an additional descent into the left subrange whenever duplicates
// of the pivot may have been sorted there.
func (t *KDTree[T]) forEachMatchingRange(l, r, d int, q T, f func(T) bool) bool {
	if l > r {
		return false
	}
	m := (l + r) / 2
	if equalOnAllDims(t.cmp, q, t.values[m], t.dim) {
		if f(t.values[m]) {
			return true
		}
	}
	c := t.cmp.Compare(q, t.values[m], d)
	descendRight := c >= 0
	descendLeft := c < 0 || (c == 0 && t.dirty[m])
	nd := (d + 1) % t.dim
	if descendRight {
		if t.forEachMatchingRange(m+1, r, nd, q, f) {
			return true
		}
	}
	if descendLeft {
		if t.forEachMatchingRange(l, m-1, nd, q, f) {
			return true
		}
	}
	return false
}

// ForEach visits every stored value in array order. f returns true to
// cancel; ForEach itself returns true iff f ever returned true.
func (t *KDTree[T]) ForEach(f func(T) bool) bool {
	for _, v := range t.values {
		if f(v) {
			return true
		}
	}
	return false
}

// GetAll returns a copy of every stored value, in array order.
func (t *KDTree[T]) GetAll() []T {
	out := make([]T, len(t.values))
	copy(out, t.values)
	return out
}

// RangeForEach visits every stored value within [lo, hi] (either bound may
// be nil to mean "unbounded"), calling f for each. If both bounds are
// present and lo[d] > hi[d] on any dimension, it returns immediately with no
// matches (spec.md §4.3, §8 item 3). f returns true to cancel; RangeForEach
// itself returns true iff f ever returned true.
func (t *KDTree[T]) RangeForEach(f func(T) bool, lo, hi *T, hiInclusive bool) bool {
	if !validBoundOrder(t.cmp, t.dim, lo, hi) {
		return false
	}
	return t.rangeForEachRange(0, t.Len()-1, 0, f, lo, hi, hiInclusive)
}

func (t *KDTree[T]) rangeForEachRange(l, r, d int, f func(T) bool, lo, hi *T, hiInclusive bool) bool {
	if l > r {
		return false
	}
	m := (l + r) / 2
	if boundsMatch(t.cmp, t.dim, t.values[m], lo, hi, hiInclusive) {
		if f(t.values[m]) {
			return true
		}
	}

	hiPresent := hi != nil
	var rightCmp int
	if hiPresent {
		rightCmp = t.cmp.Compare(*hi, t.values[m], d)
	}
	descendRight := !hiPresent || rightCmp >= 0

	loPresent := lo != nil
	var leftCmp int
	if loPresent {
		leftCmp = t.cmp.Compare(*lo, t.values[m], d)
	}
	descendLeft := !loPresent || leftCmp <= 0
	if !descendLeft && t.dirty[m] && hiPresent && rightCmp == 0 {
		// Duplicates of the pivot may have sorted to the left even though
		// the lower bound alone would not have sent us there (spec.md §9,
		// Open Questions: range descent mirrors the equality rule but tests
		// the upper-bound comparison instead of the query comparison).
		descendLeft = true
	}

	nd := (d + 1) % t.dim
	if descendRight {
		if t.rangeForEachRange(m+1, r, nd, f, lo, hi, hiInclusive) {
			return true
		}
	}
	if descendLeft {
		if t.rangeForEachRange(l, m-1, nd, f, lo, hi, hiInclusive) {
			return true
		}
	}
	return false
}

// TryGetFirst returns the first value encountered within [lo, hi] (no global
// ordering guarantee across values), or the zero value and false if none
// match.
func (t *KDTree[T]) TryGetFirst(lo, hi *T, hiInclusive bool) (T, bool) {
	var result T
	found := false
	t.RangeForEach(func(v T) bool {
		result = v
		found = true
		return true
	}, lo, hi, hiInclusive)
	return result, found
}
