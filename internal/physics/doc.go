// Package physics models the two stars and the debris of their collision.
//
//   - [Body]: one of the two approaching stars
//   - [Pair]: the two bodies and the mutual attraction between them
//   - [Particle]: one fragment of the explosion, with a finite life
//
// Body velocities are in units per tick: the integrator adds velocity to
// position directly and scales only the force by the tick duration. Particle
// velocities are in units per second.
//
// # Example
//
//	pair := physics.NewPair(physics.DefaultA(), physics.DefaultB())
//	g := physics.Gravity{G: 0.5, Epsilon: 0.1}
//	for pair.Separation() >= 6 {
//	    pair.Step(g, 1.0/60, 0.01)
//	}
package physics
