package meshfree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPointSet is returned when a source or target point set has no points.
	ErrEmptyPointSet = errors.New("point set must not be empty")

	// ErrInvalidDegree is returned when the polynomial degree is negative.
	ErrInvalidDegree = errors.New("polynomial degree must be non-negative")
)

// ErrDimensionMismatch indicates that the source and target point sets do not
// share the same coordinate dimension, or that a point set reports an invalid
// dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidNeighborCount indicates a neighbor count outside (0, |source|].
// Interpolation needs at least one neighbor and can never use more neighbors
// than there are source points.
type ErrInvalidNeighborCount struct {
	K          int
	SourceSize int
}

func (e *ErrInvalidNeighborCount) Error() string {
	return fmt.Sprintf("invalid neighbor count: k=%d must be in (0, %d]", e.K, e.SourceSize)
}

// ErrValueCountMismatch indicates that a source value slice passed to
// Interpolate does not match the size of the source point set the handle was
// constructed with.
type ErrValueCountMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrValueCountMismatch) Error() string {
	return fmt.Sprintf("value count mismatch: source has %d points, got %d values", e.Expected, e.Actual)
}
