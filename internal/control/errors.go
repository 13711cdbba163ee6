package control

import "errors"

var (
	ErrUnknownEvent = errors.New("control: unknown event")
	ErrUnknownScene = errors.New("control: no scene registered for variant")
	ErrSink         = errors.New("control: display sink failed")
)
