// Package mls solves the local weighted least-squares systems of
// moving-least-squares interpolation.
//
// For one target with k neighbor points, the fit minimizes
//
//	sum_j phi_j (p(x_j) - f_j)^2
//
// over polynomials p of total degree <= Degree, where phi_j is a compactly
// supported radial weight centered on the target. Evaluating the minimizing
// polynomial at the target collapses to a weighted sum of the neighbor
// values, and the per-neighbor weights of that sum are what Coefficients
// returns. The weights depend only on geometry, so they are computed once
// and reused for any number of value fields.
package mls

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/meshfree/basis"
	"github.com/hupe1980/meshfree/internal/parallel"
	"github.com/hupe1980/meshfree/kernel"
)

// radiusPadding scales each target's support radius past its farthest
// neighbor so that neighbor's weight stays nonzero.
const radiusPadding = 1.1

// Config fixes the shape of every local fit.
type Config struct {
	// Degree is the total polynomial degree reproduced exactly.
	Degree int

	// Kernel is the compactly supported radial weighting function.
	Kernel kernel.Kernel

	// Workers caps the goroutines used for the per-target solves
	// (GOMAXPROCS if <= 0).
	Workers int
}

// NeighborTable is the dense per-target neighbor geometry: the coordinates
// of target i's j-th neighbor occupy
//
//	Coords[(i*K+j)*Dim : (i*K+j+1)*Dim]
//
// The slot ordering is whatever the neighbor query produced; it only has to
// match the index table the caller evaluates with later.
type NeighborTable struct {
	Coords     []float64
	NumTargets int
	K          int
	Dim        int
}

// Row returns the coordinates of target i's j-th neighbor.
func (t *NeighborTable) Row(i, j int) []float64 {
	at := (i*t.K + j) * t.Dim
	return t.Coords[at : at+t.Dim]
}

// Targets is read access to the target point sequence.
type Targets interface {
	Len() int
	Dim() int
	At(i int) []float64
}

// Coefficients solves one weighted least-squares system per target and
// returns the flat row-major [NumTargets][K] weight table: entry i*K+j is
// the contribution of target i's j-th neighbor to its interpolated value.
//
// A numerically singular local system (a neighbor set that is not
// unisolvent for the configured degree) fails the whole computation; the
// returned error names the offending target.
func Coefficients(cfg Config, targets Targets, neighbors *NeighborTable) ([]float64, error) {
	kern, err := kernel.Provider(cfg.Kernel)
	if err != nil {
		return nil, err
	}

	dim, k := neighbors.Dim, neighbors.K
	exps := basis.Exponents(dim, cfg.Degree)
	s := len(exps)

	// Basis at the origin: the constant term only, since every local system
	// is translated so its target sits at the origin.
	e0 := mat.NewVecDense(s, nil)
	e0.SetVec(0, 1)

	weights := make([]float64, neighbors.NumTargets*k)

	err = parallel.ForErr(neighbors.NumTargets, cfg.Workers, func(start, end int) error {
		// Per-chunk scratch; chunks never share state.
		local := make([]float64, k*dim)
		phi := make([]float64, k)
		brow := make([]float64, s)
		vand := mat.NewDense(k, s, nil)
		moment := mat.NewSymDense(s, nil)
		sol := mat.NewVecDense(s, nil)

		for i := start; i < end; i++ {
			if err := solveTarget(kern, exps, targets.At(i), neighbors, i,
				local, phi, brow, vand, moment, sol, e0); err != nil {
				return fmt.Errorf("target %d: %w", i, err)
			}
			row := weights[i*k : (i+1)*k]
			for j := 0; j < k; j++ {
				row[j] = phi[j] * floats.Dot(vand.RawRowView(j), sol.RawVector().Data)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return weights, nil
}

// solveTarget assembles and solves one target's moment system, leaving the
// radial weights in phi, the Vandermonde matrix in vand, and the polynomial
// coefficient vector in sol.
func solveTarget(kern kernel.Func, exps [][]int, target []float64, neighbors *NeighborTable, i int,
	local, phi, brow []float64, vand *mat.Dense, moment *mat.SymDense, sol *mat.VecDense, e0 *mat.VecDense,
) error {
	dim, k := neighbors.Dim, neighbors.K

	// Translate the neighborhood so the target is the origin and find the
	// support radius, padded past the farthest neighbor.
	var maxDist2 float64
	for j := 0; j < k; j++ {
		src := neighbors.Row(i, j)
		dst := local[j*dim : (j+1)*dim]
		var d2 float64
		for d := 0; d < dim; d++ {
			dst[d] = src[d] - target[d]
			d2 += dst[d] * dst[d]
		}
		if d2 > maxDist2 {
			maxDist2 = d2
		}
	}
	radius := radiusPadding * math.Sqrt(maxDist2)
	if radius == 0 {
		// Every neighbor coincides with the target; any positive radius
		// gives the same (uniform) weighting.
		radius = 1
	}

	// Radial weights and Vandermonde rows.
	for j := 0; j < k; j++ {
		p := local[j*dim : (j+1)*dim]
		var d2 float64
		for d := 0; d < dim; d++ {
			d2 += p[d] * p[d]
		}
		phi[j] = kern(math.Sqrt(d2) / radius)
		vand.SetRow(j, basis.Eval(brow, exps, p))
	}

	// Moment matrix A = V^T diag(phi) V, accumulated symmetrically.
	s := len(exps)
	for a := 0; a < s; a++ {
		for b := a; b < s; b++ {
			var sum float64
			for j := 0; j < k; j++ {
				sum += phi[j] * vand.At(j, a) * vand.At(j, b)
			}
			moment.SetSym(a, b, sum)
		}
	}

	// A is symmetric positive definite for a unisolvent neighbor set, so
	// try Cholesky first; fall back to QR for the semi-definite edge.
	var chol mat.Cholesky
	if chol.Factorize(moment) {
		return chol.SolveVecTo(sol, e0)
	}

	var qr mat.QR
	qr.Factorize(mat.DenseCopyOf(moment))
	dst := mat.NewDense(s, 1, nil)
	if err := qr.SolveTo(dst, false, e0); err != nil {
		return err
	}
	for a := 0; a < s; a++ {
		sol.SetVec(a, dst.At(a, 0))
	}
	return nil
}
