// Package viz provides the terminal front end for the fractal explorer.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset menu followed by the explorer view
//   - [Model]: explorer view turning mouse and keys into controller events
//   - [Screen]: display sink that fits each frame onto the terminal grid
//   - [Canvas]: half-block canvas, two vertically stacked pixels per cell
//
// # Input
//
//	Left click   - Recenter on the clicked point
//	Wheel        - Zoom in (up) / out (down)
//	Arrows/hjkl  - Pan by an eighth of the view
//	+ / -        - Zoom in / out by one wheel notch
//	T            - Toggle Mandelbrot / Julia
//	R            - Reset view
//	C            - Cycle panel themes
//	?            - Show help overlay
//	Esc          - Back to the preset menu
//
// Frame row 0 is the bottom of the view, so the canvas is drawn bottom-up and
// pointer rows are flipped before they reach the controller.
package viz
