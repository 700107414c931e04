package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *Error {
	return NewError(ErrNetworkConnection, message, cause)
}

func NewTimeoutError(operation string, timeout time.Duration) *Error {
	return NewError(ErrTimeout, fmt.Sprintf("operation %s timed out after %v", operation, timeout), nil)
}

func NewStatusError(operation string, status int) *Error {
	err := NewError(ErrStatus, fmt.Sprintf("%s: unexpected status %d", operation, status), nil)
	err.StatusCode = status
	return err
}

func NewDecodeError(operation string, cause error) *Error {
	return NewError(ErrDecode, fmt.Sprintf("%s: malformed response", operation), cause)
}

// ClassifyError maps a transport failure onto an Error. Errors that are
// already classified pass through unchanged.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrTimeout, "request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(ErrTimeout, "request timed out", err)
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewError(ErrTimeout, "request timed out", err)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	default:
		return NewNetworkError("unknown network error", err)
	}
}

// IsRetryable reports whether repeating the request could succeed. Server
// errors (5xx) and 429 count, client errors do not.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrTimeout:
		return true
	case ErrStatus:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}

func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrTimeout:
		return "Request timed out. Please try again."
	case ErrStatus:
		if e.StatusCode == 404 {
			return "The contact service does not know this contact."
		}
		return "The contact service rejected the request."
	case ErrDecode:
		return "The contact service sent an unreadable response."
	default:
		return "An unexpected error occurred."
	}
}
