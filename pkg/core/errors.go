package core

import (
	"errors"
	"fmt"
)

// CoreError is a non-2xx answer from Core.
type CoreError struct {
	Status  int
	Message string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("Core %d: %s", e.Status, e.Message)
}

// TransportError is a failure to complete the round trip: connection
// problems, the call timing out, or an unreadable response.
type TransportError struct {
	Method  string
	Path    string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("Core request %s %s timed out: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("Core request %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SerializationError is a request body that cannot be encoded or a
// response body that is not valid JSON.
type SerializationError struct {
	Op  string // "encode request" or "decode response"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("Core %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// RequestError is a malformed call rejected before anything is sent.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid Core request: " + e.Reason
}

// IsTimeout reports whether err is a TransportError caused by the call timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}

// Outcome labels the result of a call for metrics and traces.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		ce *CoreError
		te *TransportError
		se *SerializationError
		re *RequestError
	)
	switch {
	case errors.As(err, &ce):
		return "core"
	case errors.As(err, &te):
		if te.Timeout {
			return "timeout"
		}
		return "transport"
	case errors.As(err, &se):
		return "serialization"
	case errors.As(err, &re):
		return "request"
	default:
		return "error"
	}
}

// StatusCode returns the Core status carried by err, or 0.
func StatusCode(err error) int {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}
