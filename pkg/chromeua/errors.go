package chromeua

import (
	"errors"
	"fmt"
)

// Error kinds. Every query or update error unwraps to exactly one of them,
// so callers can branch with errors.Is without parsing messages.
var (
	// ErrType reports input of the wrong shape, e.g. agents that are not a list.
	ErrType = errors.New("type error")
	// ErrValue reports invalid values, unknown filters and empty results.
	ErrValue = errors.New("value error")
	// ErrKey reports a required key missing from the sec-ch-ua table.
	ErrKey = errors.New("key error")
	// ErrIndex reports a selection from an empty set of agents.
	ErrIndex = errors.New("index error")
)

// ErrReadData is returned when a registry data file cannot be read or decoded.
var ErrReadData = errors.New("failed to read registry data")

// Error carries a fixed, human-readable message together with its kind and
// an optional underlying cause.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// synthesisError reports any failure while assembling headers under one message.
func synthesisError(cause error) *Error {
	return &Error{
		Kind:  ErrValue,
		Msg:   "Failed to generate headers: " + cause.Error(),
		Cause: cause,
	}
}
