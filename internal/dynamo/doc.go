// Package dynamo provides the primitives shared by the collision simulation.
//
// The package defines the small vocabulary every other package builds on:
//
//   - [Vec3]: a 3D vector with the arithmetic the integrators need
//   - [Rand]: the injectable randomness source used for particle bursts
//   - sentinel errors and [SimulationError] for tick-scoped failures
//
// # Example
//
//	a := dynamo.Vec3{X: -18}
//	b := dynamo.Vec3{X: 18}
//	dist := a.Distance(b) // 36
//
// # Determinism
//
// Everything random in the simulation reads from a [Rand]. Seed it with
// [NewRand] to make a run reproducible.
package dynamo
