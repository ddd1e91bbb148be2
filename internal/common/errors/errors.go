// Package errors provides standardized error handling for the storefront client.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Authentication: bad credentials, duplicate registration, stale token.
	ErrCodeAuthFailed         ErrorCode = "AUTH_FAILED"
	ErrCodeRegistrationFailed ErrorCode = "REGISTRATION_FAILED"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"

	// Validation: guarded locally, no server round-trip.
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeCartNotReady      ErrorCode = "CART_NOT_READY"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// Order submission.
	ErrCodePaymentFailed ErrorCode = "PAYMENT_FAILED"

	// Backend-decided authorization failures.
	ErrCodeAuthorizationDenied ErrorCode = "AUTHORIZATION_DENIED"

	// Routing.
	ErrCodeRouteNotFound ErrorCode = "ROUTE_NOT_FOUND"

	// Transport-level failures talking to the order API.
	ErrCodeAPIRequestFailed ErrorCode = "API_REQUEST_FAILED"
	ErrCodeAPIDecodeFailed  ErrorCode = "API_DECODE_FAILED"
	ErrCodeTokenStoreFailed ErrorCode = "TOKEN_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Status    int                    `json:"status,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewAuthFailedError wraps a login rejection. The message is the server's
// verbatim message when one was returned.
func NewAuthFailedError(serverMessage string, status int) *StandardError {
	if serverMessage == "" {
		serverMessage = "Authentication failed"
	}
	return &StandardError{
		Code:      ErrCodeAuthFailed,
		Message:   serverMessage,
		Status:    status,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistrationFailedError wraps a register rejection (e.g. duplicate email).
func NewRegistrationFailedError(serverMessage string, status int) *StandardError {
	if serverMessage == "" {
		serverMessage = "Registration failed"
	}
	return &StandardError{
		Code:      ErrCodeRegistrationFailed,
		Message:   serverMessage,
		Status:    status,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionExpiredError marks a persisted token the backend no longer honors.
func NewSessionExpiredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionExpired,
		Message:   "Session is no longer valid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable local validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCartNotReadyError signals checkout attempted without a store or items.
func NewCartNotReadyError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCartNotReady,
		Message:   "Cart is not ready for checkout",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError signals a workflow method called in the wrong state.
func NewInvalidTransitionError(from, action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   "Action not allowed in current state",
		Details:   fmt.Sprintf("state: %s, action: %s", from, action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaymentFailedError wraps a rejected order submission. The cart stays
// intact; the caller may re-trigger manually.
func NewPaymentFailedError(serverMessage string, status int) *StandardError {
	if serverMessage == "" {
		serverMessage = "Payment failed"
	}
	return &StandardError{
		Code:      ErrCodePaymentFailed,
		Message:   serverMessage,
		Status:    status,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthorizationDeniedError wraps a backend role/ownership rejection.
func NewAuthorizationDeniedError(serverMessage string, status int) *StandardError {
	if serverMessage == "" {
		serverMessage = "Not authorized"
	}
	return &StandardError{
		Code:      ErrCodeAuthorizationDenied,
		Message:   serverMessage,
		Status:    status,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRouteNotFoundError covers unmatched paths in the view shell.
func NewRouteNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteNotFound,
		Message:   "Page not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIRequestFailedError wraps a transport failure reaching the backend.
func NewAPIRequestFailedError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIRequestFailed,
		Message:   "Request to order API failed",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIDecodeFailedError wraps an unreadable backend response.
func NewAPIDecodeFailedError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIDecodeFailed,
		Message:   "Could not decode order API response",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenStoreFailedError wraps a persistence failure for the session token.
func NewTokenStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenStoreFailed,
		Message:   "Token persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard unwraps err into a *StandardError when possible.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code, or empty when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Code
	}
	return ""
}

// UserMessage returns the text a view should surface for err. Server-provided
// messages pass through verbatim.
func UserMessage(err error) string {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Message
	}
	return "Something went wrong"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTH_") || strings.Contains(codeStr, "REGISTRATION") || strings.Contains(codeStr, "SESSION"):
		return "AUTH"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "CART") || strings.Contains(codeStr, "TRANSITION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PAYMENT"):
		return "PAYMENT"
	case strings.Contains(codeStr, "AUTHORIZATION"):
		return "AUTHZ"
	case strings.Contains(codeStr, "ROUTE"):
		return "ROUTING"
	case strings.Contains(codeStr, "API_") || strings.Contains(codeStr, "TOKEN_STORE"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
