package store

import (
	"errors"
	"fmt"

	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/validation"
)

type ErrorType string

const (
	ErrValidation ErrorType = "validation"
	ErrDuplicate  ErrorType = "duplicate"
	ErrRemote     ErrorType = "remote"
	ErrNotFound   ErrorType = "not_found"
)

const (
	MsgDuplicatePhone = "A contact with this phone number already exists!"
	MsgDuplicateEmail = "A contact with this email address already exists!"
	MsgLoadFailed     = "Failed to load contacts. Please try again later."
	MsgUpdateFailed   = "Failed to update contact. Please try again."
	MsgDeleteFailed   = "Failed to delete contact. Please try again."
	MsgNotFound       = "Contact not found."
)

// Error is returned by every store operation that refuses or abandons a change.
// The in-memory list is always left consistent when one is returned.
type Error struct {
	Type    ErrorType
	Field   validation.FieldKind
	Message string
	Result  *validation.ValidationResult
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown in the error notification.
func (e *Error) UserMessage() string {
	return e.Message
}

func NewValidationError(result validation.ValidationResult) *Error {
	return &Error{
		Type:    ErrValidation,
		Message: result.Summary,
		Result:  &result,
	}
}

func NewDuplicateError(field validation.FieldKind) *Error {
	message := MsgDuplicatePhone
	if field == validation.FieldEmail {
		message = MsgDuplicateEmail
	}
	return &Error{
		Type:    ErrDuplicate,
		Field:   field,
		Message: message,
	}
}

func NewRemoteError(message string, cause error) *Error {
	return &Error{
		Type:    ErrRemote,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(id int) *Error {
	return &Error{
		Type:    ErrNotFound,
		Message: MsgNotFound,
		Cause:   fmt.Errorf("contact %d", id),
	}
}

// IsType reports whether err is a store Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Type == errType
}

// UserMessage picks the best text to show for any error.
func UserMessage(err error) string {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.UserMessage()
	}
	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		return remoteErr.UserMessage()
	}
	return err.Error()
}
