// Package viz renders a running galaxy in the terminal.
//
//   - [Model]: Bubble Tea program that steps the simulator on every tick
//   - [Canvas]: braille canvas, 2x4 dots per cell, with highlighted cells for holes
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	D     - Toggle drawing
//	Q/W   - Increase/decrease G
//	E/R   - Increase/decrease the star speed cap
//	T     - Cycle color themes
//	?     - Show help
//	Esc   - Quit
package viz
