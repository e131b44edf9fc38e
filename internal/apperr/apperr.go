// Package apperr defines the operational error taxonomy. Every error carries
// the HTTP status it maps to, so the central fiber error handler can format
// the response without inspecting error strings.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Errors  interface{} // optional field-level detail, e.g. validation failures
}

func (e *Error) Error() string {
	return e.Message
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

func Validation(message string, details interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Errors: details}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// As unwraps err into an *Error, or nil if it is not one.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
