package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures where the server could not be reached or gave
// no authoritative answer: connection errors, timeouts, 5xx responses. The
// caller may fall back to cached state.
var ErrUnavailable = errors.New("server unavailable")

// RejectedError is an authoritative refusal from the server (4xx). Unlike
// ErrUnavailable it means the server was reached and said no.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected (status %d)", e.StatusCode)
}
