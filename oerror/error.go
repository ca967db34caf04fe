package oerror

import (
	"errors"
	"fmt"
)

// ErrChecksumMismatch is wrapped by replay errors when a re-simulated tick diverges from the recording.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Error is a domain error raised outside of the simulation core.
type Error struct {
	Err   string
	cause error
}

// New returns a new error formatted with the given arguments. If one of the arguments is an error,
// the first such error is kept as the cause so errors.Is and errors.As can see through it.
func New(format string, args ...any) *Error {
	e := &Error{Err: fmt.Sprintf(format, args...)}
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			e.cause = err
			break
		}
	}
	return e
}

func (e *Error) Error() string {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.cause
}
