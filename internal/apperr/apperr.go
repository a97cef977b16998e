// Package apperr defines the error taxonomy shared by handlers and services:
// validation failures, lookup misses, and store unavailability each carry a
// code that maps onto an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	CodeInvalidArgument Code = iota + 1
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeUnauthenticated
	CodeUnavailable
	CodeInternal
)

var code2str = map[Code]string{
	CodeInvalidArgument:  "invalid_argument",
	CodeNotFound:         "not_found",
	CodeAlreadyExists:    "already_exists",
	CodePermissionDenied: "permission_denied",
	CodeUnauthenticated:  "unauthenticated",
	CodeUnavailable:      "unavailable",
	CodeInternal:         "internal",
}

var code2http = map[Code]int{
	CodeInvalidArgument:  http.StatusBadRequest,
	CodeNotFound:         http.StatusNotFound,
	CodeAlreadyExists:    http.StatusConflict,
	CodePermissionDenied: http.StatusForbidden,
	CodeUnauthenticated:  http.StatusUnauthorized,
	CodeUnavailable:      http.StatusServiceUnavailable,
	CodeInternal:         http.StatusInternalServerError,
}

func (c Code) String() string {
	if s, ok := code2str[c]; ok {
		return s
	}
	return "internal"
}

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	err     error
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, err: cause}
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.err != nil {
		s += fmt.Sprintf(": %s", e.err)
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) HTTPStatusCode() int {
	if s, ok := code2http[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Convert coerces any error into an *Error, defaulting to internal.
func Convert(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Code: CodeInternal, Message: "internal error", err: err}
	}
	return e
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
