// Package meshfree provides scattered-data interpolation for Go.
//
// Meshfree transfers field data between non-matching point clouds, as needed
// by multiphysics coupling and particle methods: values known at an irregular
// set of source points are estimated at arbitrary target points through a
// moving-least-squares (MLS) fit over each target's nearest source points.
//
// # Quick Start
//
//	source := meshfree.Points{{0}, {1}, {2}, {3}, {4}, {5}}
//	target := meshfree.Points{{1.5}, {3.25}}
//
//	mls, _ := meshfree.New(source, target,
//	    meshfree.WithDegree(2),
//	    meshfree.WithKernel(kernel.Wendland2),
//	)
//
//	// Evaluate as many fields as needed on the same handle.
//	temperature, _ := mls.Interpolate(temperatureAtSource)
//	pressure, _ := mls.Interpolate(pressureAtSource)
//
// # Pipeline
//
// Construction runs the expensive geometric work exactly once:
//
//  1. Build a kd-tree over the source points.
//  2. Query the k nearest source points for every target.
//  3. Reorganize the ragged query result into dense per-target tables.
//  4. Solve the local weighted least-squares systems, one per target.
//
// The resulting index and weight tables are cached on the handle and are
// immutable afterward. Interpolate only performs the final weighted sums, so
// it is cheap, repeatable, and safe to call concurrently.
//
// # Accuracy
//
// With polynomial degree d, interpolation reproduces any polynomial field of
// total degree <= d exactly (up to floating-point roundoff), provided each
// target's neighbor set is unisolvent for degree d. The default neighbor
// count is the smallest that makes the degree-d basis generically well-posed
// in the active dimension.
//
// All phases are data-parallel across targets and scale with GOMAXPROCS.
package meshfree
