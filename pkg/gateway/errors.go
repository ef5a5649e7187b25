package gateway

import (
	"errors"
	"fmt"

	"github.com/aretw0/opsmcp/pkg/core"
	"github.com/aretw0/opsmcp/pkg/schema"
)

// UnknownToolError is returned for a dispatch target that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ValidationError is input that does not match the tool's input shape.
// Nothing has been sent to Core when it is returned.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input for %s: %v", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields returns the individual field failures, if any.
func (e *ValidationError) Fields() []error {
	return schema.ValidationErrors(e.Err)
}

// ErrorKind classifies a dispatch failure.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindUnknownTool   ErrorKind = "unknown_tool"
	KindTransport     ErrorKind = "transport"
	KindTimeout       ErrorKind = "timeout"
	KindCore          ErrorKind = "core"
	KindSerialization ErrorKind = "serialization"
	KindInternal      ErrorKind = "internal"
)

// Kind returns the class of err. A nil error has no kind.
func Kind(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var (
		ve *ValidationError
		ue *UnknownToolError
		ce *core.CoreError
		te *core.TransportError
		se *core.SerializationError
	)
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &ue):
		return KindUnknownTool
	case errors.As(err, &ce):
		return KindCore
	case errors.As(err, &te):
		if te.Timeout {
			return KindTimeout
		}
		return KindTransport
	case errors.As(err, &se):
		return KindSerialization
	default:
		return KindInternal
	}
}
