package remote

import (
	"errors"
	"fmt"
)

// TransportError reports a failure to complete the HTTP exchange:
// connection refused, DNS failure, timeout or a truncated body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a response with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string // leading part of the response body
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("unexpected status %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// ShapeError reports a body that is not an array of exchange records.
// Index is the offending element, or -1 when the body as a whole is wrong.
type ShapeError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("exchange %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "malformed response: " + msg
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Kind classifies err for logging: "transport", "status", "shape" or
// "other".
func Kind(err error) string {
	var (
		te *TransportError
		se *StatusError
		sh *ShapeError
	)
	switch {
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &se):
		return "status"
	case errors.As(err, &sh):
		return "shape"
	default:
		return "other"
	}
}

const maxExcerpt = 200

func excerpt(body []byte) string {
	s := string(body)
	if len(s) > maxExcerpt {
		s = s[:maxExcerpt] + "..."
	}
	return s
}
