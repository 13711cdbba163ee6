package control

import "github.com/san-kum/fractalview/internal/render"

// Sink receives every completed frame.
type Sink interface {
	Display(frame *render.Frame) error
}

type SinkFunc func(frame *render.Frame) error

func (f SinkFunc) Display(frame *render.Frame) error {
	return f(frame)
}

// Discard drops frames. Used for headless replay and benchmarks.
var Discard Sink = SinkFunc(func(*render.Frame) error { return nil })
