// Package errors provides the HTTP-level error vocabulary shared by the
// client and the providers, plus thin wrapping helpers over the standard library.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for transport-level failures
var (
	// ErrTimeout indicates a request exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates the provider throttled the request (HTTP 429)
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrNotFound indicates the provider has nothing for the query (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the provider rejected the credentials (HTTP 401/403)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a 5xx gateway or availability failure
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidResponse indicates a body could not be parsed
	ErrInvalidResponse = errors.New("invalid response")

	// ErrEmptyResponse indicates a 2xx response without usable content
	ErrEmptyResponse = errors.New("empty response")
)

// StatusError records a non-2xx HTTP status. It unwraps to the matching
// sentinel so callers can test with Is.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Unwrap maps the status code onto a sentinel.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusTooManyRequests:
		return ErrRateLimit
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway, http.StatusInternalServerError:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func New(msg string) error { return errors.New(msg) }

func Errorf(format string, args ...interface{}) error { return fmt.Errorf(format, args...) }

func Join(errs ...error) error { return errors.Join(errs...) }

// IsAuth reports whether the provider refused the caller: bad credentials or throttling.
func IsAuth(err error) bool {
	return IsUnauthorized(err) || IsRateLimit(err)
}

func IsRateLimit(err error) bool { return Is(err, ErrRateLimit) }

func IsNotFound(err error) bool { return Is(err, ErrNotFound) }

func IsUnauthorized(err error) bool { return Is(err, ErrUnauthorized) }

func IsInvalidResponse(err error) bool { return Is(err, ErrInvalidResponse) }

// Reason names the transport failure behind err for log fields.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case IsRateLimit(err):
		return "rate_limited"
	case IsUnauthorized(err):
		return "unauthorized"
	case IsNotFound(err):
		return "not_found"
	case Is(err, ErrServiceUnavailable):
		return "unavailable"
	case Is(err, ErrTimeout):
		return "timeout"
	case IsInvalidResponse(err):
		return "invalid_body"
	default:
		return "transport"
	}
}

// StatusCode returns the HTTP status recorded in err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if As(err, &se) {
		return se.Code
	}
	return 0
}
