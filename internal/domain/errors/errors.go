package errors

import "errors"

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrUnknownField       = errors.New("unknown metric field")
	ErrSessionNotFound    = errors.New("session not found")
	ErrControllerClosed   = errors.New("controller closed")
	ErrNonNumericInput    = errors.New("non-numeric input")
)
