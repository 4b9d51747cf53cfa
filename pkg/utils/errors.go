package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// AsCustomError unwraps err into a *CustomError, or nil if it isn't one.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}

// Common error constructors

func NewValidationError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "validation_failed",
		Message: message,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    "not_found",
		Message: message,
	}
}

func NewForbiddenError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusForbidden,
		Kind:    "forbidden",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnauthorized,
		Kind:    "unauthorized",
		Message: message,
	}
}

// NewInvalidStateError flags an operation that is illegal in the job's
// current status.
func NewInvalidStateError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "invalid_state",
		Message: message,
	}
}

// NewDuplicateError flags a uniqueness violation on an application or review.
func NewDuplicateError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    "duplicate",
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    "internal_error",
		Message: message,
	}
}
