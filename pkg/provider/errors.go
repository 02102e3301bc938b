package provider

import "fmt"

// Error is the single error type that crosses the provider boundary.
// Three origins collapse into it: an HTTP-level failure carries a
// StatusCode, a GraphQL-level failure carries the errors payload in
// Response with no status code, and any other transport or decode
// failure carries only a message.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Response   any    `json:"response,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewHTTPError builds an Error from a non-2xx HTTP response.
func NewHTTPError(status int, statusText, body string) *Error {
	return &Error{
		Message:    fmt.Sprintf("HTTP %d: %s", status, statusText),
		StatusCode: status,
		Response:   body,
	}
}

// WrapError converts an arbitrary failure (network error, malformed
// JSON) into an Error with no status code. Existing *Error values pass
// through untouched so wrapping is idempotent across call layers.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe
	}
	return &Error{Message: err.Error(), cause: err}
}
