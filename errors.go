package sendcloud

import (
	"errors"
	"fmt"

	"github.com/etsoo/sendcloud-go/internal/core"
)

// Predefined sentinel errors for common cases.
var (
	// ErrUnresolvedCountry indicates a phone number matched no supported country.
	ErrUnresolvedCountry = core.ErrUnresolvedCountry

	// ErrInvalidPhoneFormat indicates a phone number failed country validation.
	ErrInvalidPhoneFormat = core.ErrInvalidPhoneFormat

	// ErrTemplateRequired indicates no template was given and none could be
	// resolved. This is a caller error: fix the registry or the call rather
	// than retrying.
	ErrTemplateRequired = errors.New("template required")

	// ErrInvalidConfiguration indicates invalid client configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("client closed")
)

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidConfiguration {
		return true
	}
	_, ok := target.(*ValidationError)
	return ok
}

// TransportError wraps a failed or malformed gateway exchange. It is a
// pipeline failure, distinct from a gateway-reported unsuccessful send,
// which arrives as an ActionResult with Ok=false.
type TransportError struct {
	// Endpoint is the URL the request was posted to.
	Endpoint string

	// Message describes the failure.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error posting to %s: %s", e.Endpoint, e.Message)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a new transport error.
func NewTransportError(endpoint, message string, cause error) *TransportError {
	return &TransportError{
		Endpoint: endpoint,
		Message:  message,
		Cause:    cause,
	}
}
