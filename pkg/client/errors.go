package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure for retry and display decisions.
type ErrorKind string

const (
	// KindAuth covers 401 and 403 responses.
	KindAuth ErrorKind = "auth"
	// KindNotFound covers 404 responses.
	KindNotFound ErrorKind = "not_found"
	// KindClient covers the remaining 4xx responses.
	KindClient ErrorKind = "client"
	// KindServer covers 5xx responses; only these are eligible for the
	// catalog's bounded retry.
	KindServer ErrorKind = "server"
	// KindNetwork means the request never completed: DNS, TLS or
	// connectivity failure before any response arrived.
	KindNetwork ErrorKind = "network"
	// KindMalformed means the response body could not be parsed as the
	// declared content type.
	KindMalformed ErrorKind = "malformed"
)

// APIError is the structured descriptor for every failed API call. The
// client never surfaces a bare parse or transport error; callers always
// get one of these.
type APIError struct {
	Kind       ErrorKind
	StatusCode int    // 0 for network-class errors
	StatusText string // server status line, e.g. "500 Internal Server Error"
	Message    string // human-readable, distinct per status class
	Body       string // raw response body, for diagnostics
	Endpoint   string // the requested path
	Err        error  // underlying cause, when one exists
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// ValidationError is a client-side precondition failure. Requests that
// fail validation never reach the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsStatus returns true if err (or any wrapped error) is an APIError with
// the given HTTP status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsKind returns true if err (or any wrapped error) is an APIError of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsValidation returns true if err is a client-side validation failure.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// cannedMessage returns the fallback message for a status code, used when
// the response body carries no message of its own.
func cannedMessage(code int) string {
	switch {
	case code == http.StatusUnauthorized:
		return "Unauthorized - Please login"
	case code == http.StatusForbidden:
		return "Forbidden - Access denied"
	case code == http.StatusNotFound:
		return "Resource not found"
	case code == http.StatusInternalServerError:
		return "Internal server error - The API server encountered an error. Please try again later."
	case code >= 500:
		return fmt.Sprintf("Server error (%d) - The server is experiencing issues. Please try again later.", code)
	default:
		return fmt.Sprintf("Client error (%d)", code)
	}
}
