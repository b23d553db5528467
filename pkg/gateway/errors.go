package gateway

import (
	"errors"
	"fmt"

	"github.com/vishalpatwa-in/ecommerce-platform/internal/order"
)

// GatewayError represents an error from an external provider call.
type GatewayError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for GatewayError.
func (e *GatewayError) Is(target error) bool {
	t, ok := target.(*GatewayError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(provider, code, message string) *GatewayError {
	return &GatewayError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *GatewayError) WithCause(err error) *GatewayError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *GatewayError) WithStatusCode(code int) *GatewayError {
	e.StatusCode = code
	return e
}

// Sentinel errors for gateway failure modes.
var (
	// ErrOrderNotFound indicates the order id or number was not found.
	ErrOrderNotFound = order.ErrNotFound

	// ErrInvalidTransition indicates a rejected order status change.
	ErrInvalidTransition = order.ErrInvalidTransition

	// ErrAuthenticationFailed indicates provider authentication failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrPreconditionFailed indicates a required field (typically the
	// tracking number) is missing for the requested operation.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidSignature indicates a webhook or payment signature did
	// not verify.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrProviderUnavailable indicates a network failure, timeout or 5xx
	// from the provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRejected indicates the provider returned a business-logic
	// failure for an otherwise well-formed request.
	ErrProviderRejected = errors.New("provider rejected request")

	// ErrProviderNotFound indicates the requested provider is not registered.
	ErrProviderNotFound = errors.New("provider not found")
)
