package kdforest

import "github.com/gomlx/kdforest/kderrors"

// Segment is a read-only window (values, offset, length) over some backing
// sequence, used only as input to tree construction (spec.md §3). It never
// outlives its backing sequence and is not retained by the tree once
// construction completes.
type Segment[T any] struct {
	Values []T
	Offset int
	Length int
}

// SegmentOf wraps an entire slice as a single Segment.
func SegmentOf[T any](values []T) Segment[T] {
	return Segment[T]{Values: values, Offset: 0, Length: len(values)}
}

func (s Segment[T]) validate() error {
	if s.Offset < 0 || s.Length < 0 || s.Offset+s.Length > len(s.Values) {
		return kderrors.SegmentShapef(s.Offset, s.Length, len(s.Values))
	}
	return nil
}

// slice returns the [Offset, Offset+Length) window of Values.
func (s Segment[T]) slice() []T {
	return s.Values[s.Offset : s.Offset+s.Length]
}

func totalLength[T any](segments []Segment[T]) int {
	n := 0
	for _, s := range segments {
		n += s.Length
	}
	return n
}

func validateSegments[T any](segments []Segment[T]) error {
	for _, s := range segments {
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}
