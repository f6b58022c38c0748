package tbgate

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is an error code that mirrors the http status codes the gateway can
// produce. It can be used to create errors to pass around across middleware
// layers to handle errors structurally.
type Code int

const (
	CodeUnknown          Code = 0
	CodeBadRequest       Code = http.StatusBadRequest       // RFC 9110, 15.5.1
	CodeUnauthorized     Code = http.StatusUnauthorized     // RFC 9110, 15.5.2
	CodeForbidden        Code = http.StatusForbidden        // RFC 9110, 15.5.4
	CodeNotFound         Code = http.StatusNotFound         // RFC 9110, 15.5.5
	CodeMethodNotAllowed Code = http.StatusMethodNotAllowed // RFC 9110, 15.5.6

	CodeInternalServerError Code = http.StatusInternalServerError // RFC 9110, 15.6.1
	CodeNotImplemented      Code = http.StatusNotImplemented      // RFC 9110, 15.6.2
	CodeBadGateway          Code = http.StatusBadGateway          // RFC 9110, 15.6.3
	CodeServiceUnavailable  Code = http.StatusServiceUnavailable  // RFC 9110, 15.6.4
)

// Error describes an http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	return fmt.Sprintf("%s: %s", status, e.err.Error())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if gateErr, ok := asError(err); ok {
		return gateErr.Code()
	}
	return CodeUnknown
}

// asError uses errors.As to unwrap any error and look for a gate *Error.
func asError(err error) (*Error, bool) {
	var gateErr *Error
	ok := errors.As(err, &gateErr)
	return gateErr, ok
}
