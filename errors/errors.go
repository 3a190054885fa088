package errors

import "fmt"

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrNotABar         = fmt.Errorf("target is not a timeline bar")
	ErrBarOutOfRange   = fmt.Errorf("bar index out of range")
	ErrInvalidProfile  = fmt.Errorf("invalid profile name")
	ErrUnknownProfile  = fmt.Errorf("unknown profile")
	ErrNoSelection     = fmt.Errorf("no message selected")
	ErrInvalidPayload  = fmt.Errorf("invalid stored message payload")
	ErrEventBufferFull = fmt.Errorf("event buffer full")
)
