package meshfree

import (
	"time"

	"github.com/hupe1980/meshfree/basis"
	"github.com/hupe1980/meshfree/internal/parallel"
	"github.com/hupe1980/meshfree/knn"
	"github.com/hupe1980/meshfree/mls"
)

// MovingLeastSquares is an immutable interpolation handle: a cached mapping
// from source-point values to target-point values, built once by New.
//
// The handle stores two flat row-major [NumTargets][NumNeighbors] tables
// with identical shape and slot ordering. indices[i*k+j] names the source
// point that is target i's j-th neighbor; weights[i*k+j] is that neighbor's
// contribution to target i's interpolated value. Interpolate only reads
// them, so a handle is safe for concurrent use.
type MovingLeastSquares struct {
	dim        int
	sourceSize int
	numTargets int
	k          int

	indices []int
	weights []float64

	workers int
	logger  *Logger
}

// New builds an interpolation handle from known-data locations (source) to
// estimation locations (target). It runs the full geometric pipeline — index
// build, neighbor query, dense table fill, local least-squares solves — and
// caches the result, so constructing once and interpolating many fields
// amortizes the expensive part.
//
// Both point sets must be non-empty and share one coordinate dimension. The
// neighbor count (explicit via WithNeighbors, or the basis size for the
// configured degree by default) must lie in (0, source.Len()]. Violations
// are reported as typed errors before any expensive work starts.
func New(source, target PointSet, opts ...Option) (*MovingLeastSquares, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if err := checkPointSet(source); err != nil {
		return nil, err
	}
	if err := checkPointSet(target); err != nil {
		return nil, err
	}

	dim := source.Dim()
	if target.Dim() != dim {
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: target.Dim()}
	}
	if o.degree < 0 {
		return nil, ErrInvalidDegree
	}

	k := o.neighbors
	if !o.neighborsSet {
		k = basis.Size(dim, o.degree)
	}
	if k <= 0 || k > source.Len() {
		return nil, &ErrInvalidNeighborCount{K: k, SourceSize: source.Len()}
	}

	m := &MovingLeastSquares{
		dim:        dim,
		sourceSize: source.Len(),
		numTargets: target.Len(),
		k:          k,
		workers:    o.workers,
		logger:     o.logger.WithDimension(dim).WithK(k).WithSizes(source.Len(), target.Len()),
	}

	start := time.Now()
	index := knn.Build(source)
	m.logger.Debug("source index built", "took", time.Since(start))

	start = time.Now()
	flatIndices, offsets := index.Query(target, k, o.workers)
	m.logger.Debug("neighbor query done", "took", time.Since(start))

	start = time.Now()
	neighbors := m.fillNeighborTables(flatIndices, offsets, source)
	m.logger.Debug("dense tables filled", "took", time.Since(start))

	start = time.Now()
	weights, err := mls.Coefficients(mls.Config{
		Degree:  o.degree,
		Kernel:  o.kernel,
		Workers: o.workers,
	}, target, neighbors)
	if err != nil {
		return nil, err
	}
	m.weights = weights
	m.logger.Debug("coefficients computed", "took", time.Since(start), "degree", o.degree, "kernel", o.kernel)

	return m, nil
}

// fillNeighborTables turns the ragged query result into the handle's dense
// index table and the dense neighbor-coordinate table consumed by the
// coefficient engine. Every (target, slot) cell is filled independently:
// cell (i, j) reads flatIndices[offsets[i]+j] and copies that source point's
// coordinates, touching no other cell's memory.
func (m *MovingLeastSquares) fillNeighborTables(flatIndices, offsets []int, source PointSet) *mls.NeighborTable {
	m.indices = make([]int, m.numTargets*m.k)
	coords := make([]float64, m.numTargets*m.k*m.dim)

	parallel.For(m.numTargets*m.k, m.workers, func(start, end int) {
		for cell := start; cell < end; cell++ {
			i, j := cell/m.k, cell%m.k
			idx := flatIndices[offsets[i]+j]
			m.indices[cell] = idx
			copy(coords[cell*m.dim:(cell+1)*m.dim], source.At(idx))
		}
	})

	return &mls.NeighborTable{
		Coords:     coords,
		NumTargets: m.numTargets,
		K:          m.k,
		Dim:        m.dim,
	}
}

// Interpolate evaluates one field: values[i] is the field's value at source
// point i, and the result holds the interpolated value at every target, in
// target order. len(values) must equal SourceSize.
//
// The call reads only the cached tables, so it may run concurrently with
// other Interpolate calls on the same handle.
func (m *MovingLeastSquares) Interpolate(values []float64) ([]float64, error) {
	return m.InterpolateTo(values, nil)
}

// InterpolateTo is Interpolate writing into dst, which is grown or truncated
// to exactly NumTargets elements (prior contents are ignored). A nil dst
// allocates. The resized slice is returned.
func (m *MovingLeastSquares) InterpolateTo(values, dst []float64) ([]float64, error) {
	if len(values) != m.sourceSize {
		return nil, &ErrValueCountMismatch{Expected: m.sourceSize, Actual: len(values)}
	}

	if cap(dst) < m.numTargets {
		dst = make([]float64, m.numTargets)
	} else {
		dst = dst[:m.numTargets]
	}

	parallel.For(m.numTargets, m.workers, func(start, end int) {
		for i := start; i < end; i++ {
			row := i * m.k
			var acc float64
			for j := 0; j < m.k; j++ {
				acc += m.weights[row+j] * values[m.indices[row+j]]
			}
			dst[i] = acc
		}
	})

	return dst, nil
}

// Dim returns the coordinate dimension shared by source and target points.
func (m *MovingLeastSquares) Dim() int { return m.dim }

// SourceSize returns the number of source points recorded at construction;
// every value slice passed to Interpolate must have this length.
func (m *MovingLeastSquares) SourceSize() int { return m.sourceSize }

// NumTargets returns the number of target points; Interpolate results have
// this length.
func (m *MovingLeastSquares) NumTargets() int { return m.numTargets }

// NumNeighbors returns k, the per-target neighbor count.
func (m *MovingLeastSquares) NumNeighbors() int { return m.k }

// IndexTable returns a copy of the [NumTargets][NumNeighbors] neighbor index
// table, row-major. Entry i*k+j is the source index of target i's j-th
// neighbor. The handle's own table is never exposed for mutation.
func (m *MovingLeastSquares) IndexTable() []int {
	out := make([]int, len(m.indices))
	copy(out, m.indices)
	return out
}

// WeightTable returns a copy of the [NumTargets][NumNeighbors] weight table,
// row-major, with the same slot ordering as IndexTable.
func (m *MovingLeastSquares) WeightTable() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}
