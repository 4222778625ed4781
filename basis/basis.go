// Package basis enumerates and evaluates the multivariate monomial basis
// used by the local polynomial fits: all monomials of total degree <= degree
// in dim variables, in graded order with the constant term first.
//
// The ordering is deterministic and shared by every consumer in a fit: the
// Vandermonde rows, the moment system's right-hand side (the basis evaluated
// at the origin, i.e. e0), and the recovered coefficients all use it. Which
// particular order is chosen does not matter, only that it is the same
// everywhere.
package basis

import (
	"gonum.org/v1/gonum/stat/combin"
)

// Size returns the number of monomials of total degree <= degree in dim
// variables, C(dim+degree, dim). This is also the minimum neighbor count
// that keeps a degree-`degree` fit generically well-posed in dim dimensions.
func Size(dim, degree int) int {
	return combin.Binomial(dim+degree, dim)
}

// Exponents returns the exponent multi-indices of the basis in evaluation
// order: graded by total degree, constant term first, and within each degree
// ordered by the recursive enumeration below. len(result) == Size(dim, degree).
func Exponents(dim, degree int) [][]int {
	exps := make([][]int, 0, Size(dim, degree))
	cur := make([]int, dim)
	for g := 0; g <= degree; g++ {
		exps = appendGraded(exps, cur, 0, g)
	}
	return exps
}

// appendGraded appends all exponent vectors whose entries from position pos
// onward sum to exactly rem, keeping entries before pos fixed.
func appendGraded(exps [][]int, cur []int, pos, rem int) [][]int {
	if pos == len(cur)-1 {
		cur[pos] = rem
		out := make([]int, len(cur))
		copy(out, cur)
		cur[pos] = 0
		return append(exps, out)
	}
	for e := rem; e >= 0; e-- {
		cur[pos] = e
		exps = appendGraded(exps, cur, pos+1, rem-e)
	}
	cur[pos] = 0
	return exps
}

// Eval evaluates every monomial of exps at the point x and stores the
// results in dst, which must have length len(exps). dst is returned for
// convenience. Exponent vectors and x must have the same length.
func Eval(dst []float64, exps [][]int, x []float64) []float64 {
	for m, exp := range exps {
		v := 1.0
		for d, e := range exp {
			for p := 0; p < e; p++ {
				v *= x[d]
			}
		}
		dst[m] = v
	}
	return dst
}
