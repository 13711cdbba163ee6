// Package control turns pointer and scroll input into viewport changes and
// renders.
//
// Events are applied strictly in arrival order. Each applied event mutates
// the viewport and produces exactly one full frame, which is handed to the
// display [Sink] before the next event is considered:
//
//   - [PointerPressed]: recenter on the pressed pixel
//   - [ScrollWheel]: zoom in (positive) or out (negative); zero is ignored
//   - [ResetView]: restore the scene's initial viewport
//   - [SwitchVariant]: swap to another registered scene
//
// # Usage
//
//	ctrl := control.New(scene, render.New(1), sink)
//	ctrl.Refresh()                                   // startup render
//	ctrl.Dispatch(control.PointerPressed{X: 10, Y: 20})
//
// A [Controller] is not safe for concurrent use. Producers on other
// goroutines push into a [Queue], which the owning goroutine drains.
package control
