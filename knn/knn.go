// Package knn provides k-nearest-neighbor queries over fixed-dimension
// point sets, backed by a kd-tree.
//
// The query result is ragged: a flat slice of source indices plus a
// per-target offset slice delimiting each target's neighbors. Neighbors are
// returned nearest-first, but callers should not rely on the ordering — only
// on each target's slice containing its k nearest source indices.
package knn

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hupe1980/meshfree/internal/parallel"
)

// pivotSamples bounds the random sample used to pick partition medians
// during tree construction.
const pivotSamples = 100

// point is one indexed source point stored in the tree.
type point struct {
	coords []float64
	id     int
}

// Compare returns the signed distance of p from the plane through c
// orthogonal to dimension d.
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.coords[d] - q.coords[d]
}

// Dims returns the coordinate dimension.
func (p point) Dims() int { return len(p.coords) }

// Distance returns the squared Euclidean distance between p and c.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i, v := range p.coords {
		dv := v - q.coords[i]
		sum += dv * dv
	}
	return sum
}

// points satisfies kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }

func (p points) Len() int { return len(p) }

func (p points) Pivot(d kdtree.Dim) int {
	return plane{points: p, Dim: d}.Pivot()
}

func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane is points sorted along a single dimension, for median partitioning.
type plane struct {
	points
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].coords[p.Dim] < p.points[j].coords[p.Dim]
}

func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfRandoms(p, pivotSamples))
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Index is an immutable spatial index over a source point set. Queries are
// read-only and safe to run concurrently.
type Index struct {
	tree *kdtree.Tree
	dim  int
	n    int
}

// Coords is read access to a fixed-dimension point sequence, the subset of
// the caller's point-set contract that queries need.
type Coords interface {
	Len() int
	Dim() int
	At(i int) []float64
}

// Build constructs a kd-tree over the given points. Coordinates are copied;
// the input is not retained.
func Build(ps Coords) *Index {
	n := ps.Len()
	pts := make(points, n)
	for i := 0; i < n; i++ {
		c := make([]float64, ps.Dim())
		copy(c, ps.At(i))
		pts[i] = point{coords: c, id: i}
	}
	return &Index{
		tree: kdtree.New(pts, true),
		dim:  ps.Dim(),
		n:    n,
	}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.n }

// Dim returns the coordinate dimension of the indexed points.
func (ix *Index) Dim() int { return ix.dim }

// Query finds the k nearest indexed points for every target and returns the
// ragged result: indices holds all neighbor indices back to back, and
// offsets (length targets.Len()+1) delimits target i's slice as
// indices[offsets[i]:offsets[i+1]]. Each target gets exactly
// min(k, Len()) neighbors, nearest first.
//
// Targets are processed in parallel using up to workers goroutines
// (GOMAXPROCS if workers <= 0).
func (ix *Index) Query(targets Coords, k, workers int) (indices, offsets []int) {
	if k > ix.n {
		k = ix.n
	}

	numTargets := targets.Len()
	offsets = make([]int, numTargets+1)
	for i := range offsets {
		offsets[i] = i * k
	}
	indices = make([]int, numTargets*k)

	parallel.For(numTargets, workers, func(start, end int) {
		q := point{coords: make([]float64, ix.dim)}
		for i := start; i < end; i++ {
			copy(q.coords, targets.At(i))

			keeper := kdtree.NewNKeeper(k)
			ix.tree.NearestSet(keeper, q)

			// NearestSet leaves the keeper sorted nearest-first and strips
			// its unfilled sentinel, so the heap can be read off in order.
			row := indices[offsets[i]:offsets[i+1]]
			for j, cd := range keeper.Heap {
				row[j] = cd.Comparable.(point).id
			}
		}
	})

	return indices, offsets
}
