// Package viz is the terminal host for the collision animation.
//
// [Model] owns a scene graph backed by a [BrailleSurface] and ticks the
// simulation loop at 60 Hz through Bubble Tea. Window resizes are forwarded to
// the graph and mouse motion steers the backdrop.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial approach
//	T     - Cycle color themes
//	B     - Toggle the starfield and knot
//	G     - Toggle GIF recording
//	+/-   - Zoom
//	?     - Show help overlay
package viz
