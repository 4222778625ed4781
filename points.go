package meshfree

// PointSet is read access to an ordered, fixed-dimension point sequence.
// Source and target geometries are consumed exclusively through this
// contract; meshfree never mutates a point set and never retains one past
// the call it was passed to, except for neighbor queries during New.
//
// Implementations must report the same Dim for every point and must keep
// the sequence stable while a call is in flight.
type PointSet interface {
	// Len returns the number of points.
	Len() int

	// Dim returns the coordinate dimension shared by all points.
	Dim() int

	// At returns the coordinates of point i. The returned slice must have
	// length Dim and may be reused by the implementation between calls;
	// callers copy what they need to keep.
	At(i int) []float64
}

// Points adapts a slice of coordinate tuples to the PointSet contract.
// All tuples must have the same length.
type Points [][]float64

// Len returns the number of points.
func (p Points) Len() int { return len(p) }

// Dim returns the dimension of the first point, or 0 for an empty set.
func (p Points) Dim() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// At returns the coordinates of point i.
func (p Points) At(i int) []float64 { return p[i] }

// FlatPoints adapts a single contiguous coordinate arena to the PointSet
// contract: point i occupies Coords[i*D : (i+1)*D]. This is the layout most
// simulation codes already hold their particle data in, so it avoids any
// per-point allocation.
type FlatPoints struct {
	Coords []float64
	D      int
}

// Len returns the number of points.
func (p FlatPoints) Len() int {
	if p.D <= 0 {
		return 0
	}
	return len(p.Coords) / p.D
}

// Dim returns the configured dimension.
func (p FlatPoints) Dim() int { return p.D }

// At returns the coordinates of point i as a view into the arena.
func (p FlatPoints) At(i int) []float64 {
	return p.Coords[i*p.D : (i+1)*p.D]
}

// checkPointSet validates the geometric contract of a point set: non-empty
// and a positive uniform dimension. Each point's width is verified against
// the reported dimension so a ragged Points value fails fast here instead of
// corrupting the dense tables later.
func checkPointSet(ps PointSet) error {
	if ps == nil || ps.Len() == 0 {
		return ErrEmptyPointSet
	}

	dim := ps.Dim()
	if dim <= 0 {
		return &ErrDimensionMismatch{Expected: 1, Actual: dim}
	}

	// A flat arena must hold whole points; a trailing partial tuple would
	// otherwise be silently discarded by Len.
	var arena *FlatPoints
	switch fp := ps.(type) {
	case FlatPoints:
		arena = &fp
	case *FlatPoints:
		arena = fp
	}
	if arena != nil {
		if rem := len(arena.Coords) % arena.D; rem != 0 {
			return &ErrDimensionMismatch{Expected: arena.D, Actual: rem}
		}
	}

	for i := 0; i < ps.Len(); i++ {
		if len(ps.At(i)) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(ps.At(i))}
		}
	}

	return nil
}
