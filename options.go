package meshfree

import (
	"github.com/hupe1980/meshfree/kernel"
)

type options struct {
	neighbors    int
	neighborsSet bool // distinguishes an explicit (even invalid) k from the derived default
	degree       int
	kernel       kernel.Kernel
	workers      int
	logger       *Logger
}

func defaultOptions() options {
	return options{
		degree:  2,
		kernel:  kernel.Wendland0,
		workers: 0, // GOMAXPROCS
		logger:  NoopLogger(),
	}
}

// Option configures construction of a MovingLeastSquares handle.
//
// All configuration is fixed at construction and immutable afterward; the
// only way to change it is to build a new handle.
type Option func(*options)

// WithNeighbors sets the number of nearest source points used for each
// target's local fit.
//
// If not set, the neighbor count defaults to the polynomial basis size for
// the active dimension and degree — the minimum that keeps the local
// least-squares system generically well-posed. Larger values trade sharper
// locality for more robustness against badly distributed neighbors.
//
// Construction fails if k <= 0 or k exceeds the number of source points.
func WithNeighbors(k int) Option {
	return func(o *options) {
		o.neighbors = k
		o.neighborsSet = true
	}
}

// WithDegree sets the total polynomial degree the local fit reproduces
// exactly. Degree 0 reproduces constants (Shepard-like interpolation),
// degree 1 linear fields, degree 2 quadratics, and so on. Higher degrees
// need more neighbors and larger local systems.
//
// Default: 2.
func WithDegree(degree int) Option {
	return func(o *options) {
		o.degree = degree
	}
}

// WithKernel selects the compactly supported radial weighting function used
// to localize each fit around its target.
//
// Default: kernel.Wendland0.
func WithKernel(k kernel.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithWorkers caps the number of goroutines used by the data-parallel phases
// (neighbor query, table fill, coefficient solve, interpolation).
//
// If n <= 0, runtime.GOMAXPROCS(0) workers are used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger configures the logger used for phase-timing diagnostics.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			return
		}
		o.logger = l
	}
}
