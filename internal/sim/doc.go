// Package sim drives the star-collision animation.
//
// A [Loop] owns the two bodies, the explosion debris, the simulation clock and
// the deferred flash removal. The host calls [Loop.Tick] once per frame; each
// tick advances a fixed timestep and renders through the host:
//
//	Approaching --(separation < threshold, before cutoff)--> Exploding --> Decaying
//
// Exploding lasts exactly one tick. Decaying runs until every fragment has
// burnt out, after which the loop keeps rendering an idle scene.
//
// The timestep is fixed (1/60 s by default) rather than measured from the wall
// clock, so a run is reproducible; on a host that cannot hold 60 Hz the
// animation plays slower than real time. Only the collision flash is timed on
// the wall clock.
//
// [Run] ticks a loop against a headless graph and [Sweep] runs many headless
// loops in parallel.
package sim
