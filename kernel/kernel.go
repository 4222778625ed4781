// Package kernel provides compactly supported radial weighting functions
// for moving-least-squares fits.
//
// Each kernel is a smooth, monotonically decreasing function of the
// normalized distance r = d/radius, positive at r = 0 and identically 0 for
// r >= 1. The compact support localizes each target's fit to its
// neighborhood; the smoothness order controls how smoothly interpolated
// fields vary as targets move. Overall scale is irrelevant: the
// least-squares weights are invariant under scaling the kernel by a
// constant, so the functions are kept in their unnormalized textbook form.
package kernel

import (
	"fmt"
)

// Kernel identifies a compactly supported radial weighting function.
type Kernel int

const (
	// Wendland0 is the C^0 Wendland function (1-r)^2.
	Wendland0 Kernel = iota
	// Wendland2 is the C^2 Wendland function (1-r)^4 (4r+1).
	Wendland2
	// Wendland4 is the C^4 Wendland function (1-r)^6 (35r^2+18r+3).
	Wendland4
	// Wendland6 is the C^6 Wendland function (1-r)^8 (32r^3+25r^2+8r+1).
	Wendland6
	// Wu2 is the C^2 Wu function (1-r)^4 (3r^3+12r^2+16r+4)/4.
	Wu2
	// Wu4 is the C^4 Wu function (1-r)^6 (5r^4+30r^3+72r^2+82r+36)/36.
	Wu4
)

func (k Kernel) String() string {
	switch k {
	case Wendland0:
		return "Wendland0"
	case Wendland2:
		return "Wendland2"
	case Wendland4:
		return "Wendland4"
	case Wendland6:
		return "Wendland6"
	case Wu2:
		return "Wu2"
	case Wu4:
		return "Wu4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Func evaluates a radial weighting function at normalized distance r.
type Func func(r float64) float64

// Provider returns the weighting function for the given kernel.
func Provider(k Kernel) (Func, error) {
	switch k {
	case Wendland0:
		return wendland0, nil
	case Wendland2:
		return wendland2, nil
	case Wendland4:
		return wendland4, nil
	case Wendland6:
		return wendland6, nil
	case Wu2:
		return wu2, nil
	case Wu4:
		return wu4, nil
	default:
		return nil, fmt.Errorf("unsupported kernel: %v", k)
	}
}

func wendland0(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	return s * s
}

func wendland2(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	s2 := s * s
	return s2 * s2 * (4*r + 1)
}

func wendland4(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	s2 := s * s
	return s2 * s2 * s2 * (35*r*r + 18*r + 3)
}

func wendland6(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	s4 := s * s * s * s
	return s4 * s4 * (32*r*r*r + 25*r*r + 8*r + 1)
}

func wu2(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	s2 := s * s
	return s2 * s2 * (3*r*r*r + 12*r*r + 16*r + 4) / 4
}

func wu4(r float64) float64 {
	if r >= 1 {
		return 0
	}
	s := 1 - r
	s2 := s * s
	r2 := r * r
	return s2 * s2 * s2 * (5*r2*r2 + 30*r2*r + 72*r2 + 82*r + 36) / 36
}
