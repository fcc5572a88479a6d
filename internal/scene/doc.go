// Package scene is the host side of the collision animation: the scene graph
// the simulation adds to and removes from, the camera that frames it, and the
// surfaces that draw it.
//
// A [Graph] without a [Surface] is a host with no rendering context; the
// simulation declines to mount on it.
//
// Deferred work (the collision flash fading out) goes through [Timers], which
// hold one-shot tasks against a [Clock] and run them on the caller's goroutine
// when [Timers.RunDue] is called, so the graph is never touched concurrently.
package scene
