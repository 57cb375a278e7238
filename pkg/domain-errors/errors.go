// Package domainerrors provides coded domain errors for the service layer.
//
// Stores return infrastructure sentinels (pkg/platform/sentinel); services
// translate those into coded domain errors; transport maps codes onto HTTP
// statuses. Handlers never inspect raw store errors.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error. The string value is what appears in the
// HTTP error envelope.
type Code string

const (
	CodeBadRequest      Code = "bad_request"
	CodeValidation      Code = "validation_error"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeUnprocessable   Code = "unprocessable"
	CodePaymentRequired Code = "payment_required"
	CodeInternal        Code = "internal_error"
)

// Error is a domain error with a classification code. Comparable with
// errors.Is when used as a package-level sentinel.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a coded domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause remains
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two domain errors by code and message, so sentinels compare
// equal under errors.Is regardless of pointer identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// CodeOf extracts the code from err, walking the wrap chain. Unclassified
// errors report CodeInternal so nothing leaks as a 200.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// ToHTTPStatus maps a domain error onto an HTTP status code.
func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodePaymentRequired:
		return http.StatusPaymentRequired
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
