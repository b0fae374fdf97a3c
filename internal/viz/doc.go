// Package viz renders a running simulation in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps a simulation on a 60 Hz tick and draws bodies with trails
//   - [Canvas]: braille pixel canvas, two by four dots per cell
//   - [Viewport]: world-to-canvas projection with zoom
//
// The side panel shows the playback speed, simulated elapsed time, step
// count, an energy history plot and any bodies currently inside a Roche
// limit.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	+ / - - Double / halve the speed
//	R     - Reset the scenario
//	Z / X - Zoom in / out
//	F     - Fit bodies to view
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
