package errorhandler

import (
	"errors"
	"fmt"
	"net/http"

	"CRMBackend/logger"
)

type ErrorCategory int

const (
	ValidationError ErrorCategory = iota
	DuplicateError
	NotFoundError
	DatabaseError
	UnknownError
)

// CustomError carries a message safe to return to API clients alongside the
// internal context that only ends up in the service log.
type CustomError struct {
	Category        ErrorCategory
	OriginalErr     error
	UserMessage     string
	InternalMessage string
}

func (e *CustomError) Error() string {
	if e.OriginalErr != nil {
		return e.OriginalErr.Error()
	}
	return e.UserMessage
}

func (e *CustomError) Unwrap() error {
	return e.OriginalErr
}

func NewError(category ErrorCategory, err error, context string, userMsg string) *CustomError {
	return &CustomError{
		Category:        category,
		OriginalErr:     err,
		UserMessage:     userMsg,
		InternalMessage: fmt.Sprintf("%s: %v", context, err),
	}
}

func NewValidationError(message string) *CustomError {
	return &CustomError{
		Category:        ValidationError,
		UserMessage:     message,
		InternalMessage: message,
	}
}

func NewDuplicateError(message string) *CustomError {
	return &CustomError{
		Category:        DuplicateError,
		UserMessage:     message,
		InternalMessage: message,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Category:        NotFoundError,
		UserMessage:     message,
		InternalMessage: message,
	}
}

func NewDatabaseError(err error, context string) *CustomError {
	return NewError(DatabaseError, err, fmt.Sprintf("Database error: %s", context),
		"An unexpected error occurred. Please try again later.")
}

// HandleError logs the internal message and returns the user-facing message
// with the HTTP status it should be served with.
func HandleError(err error) (string, int) {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		switch customErr.Category {
		case ValidationError:
			return customErr.UserMessage, http.StatusBadRequest
		case DuplicateError:
			return customErr.UserMessage, http.StatusConflict
		case NotFoundError:
			return customErr.UserMessage, http.StatusNotFound
		default:
			logger.Log.WithError(customErr.OriginalErr).
				WithField("category", customErr.Category).
				Error(customErr.InternalMessage)
			return customErr.UserMessage, http.StatusInternalServerError
		}
	}

	logger.Log.WithError(err).Error("Unexpected error occurred")
	return "An unexpected error occurred. Please try again later.", http.StatusInternalServerError
}
