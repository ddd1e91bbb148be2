package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFailedCarriesServerMessage(t *testing.T) {
	err := NewAuthFailedError("Invalid credentials", 404)

	std, ok := AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeAuthFailed, std.Code)
	assert.Equal(t, "Invalid credentials", std.Message)
	assert.Equal(t, 404, std.Status)
	assert.False(t, std.Retryable)
}

func TestPaymentFailedDefaultsMessage(t *testing.T) {
	err := NewPaymentFailedError("", 500)
	assert.Equal(t, "Payment failed", UserMessage(err))
}

func TestInvalidTransitionNamesAction(t *testing.T) {
	err := NewInvalidTransitionError("browsing", "pay")
	assert.Contains(t, err.Details, "pay")
	assert.Contains(t, err.Details, "browsing")
	assert.Equal(t, ErrCodeInvalidTransition, CodeOf(err))
}

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("loading view: %w", NewRouteNotFoundError("/bogus"))
	assert.Equal(t, ErrCodeRouteNotFound, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeAuthFailed))
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeSessionExpired))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeCartNotReady))
	assert.Equal(t, "PAYMENT", GetErrorCategory(ErrCodePaymentFailed))
	assert.Equal(t, "AUTHZ", GetErrorCategory(ErrCodeAuthorizationDenied))
	assert.Equal(t, "TRANSPORT", GetErrorCategory(ErrCodeAPIRequestFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("NOPE")))
}

func TestRetryableOnlyForServerFailures(t *testing.T) {
	retryable := NewAPIRequestFailedError("GET /api/order/menu", fmt.Errorf("connection refused"))
	assert.True(t, retryable.Retryable)

	denied := NewAuthorizationDeniedError("unauthorized", 403)
	assert.False(t, denied.Retryable)
}
