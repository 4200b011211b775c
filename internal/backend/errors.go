package backend

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates every error the transport produces. Pages render
// by kind and never re-derive error shapes per call site.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation" // 422, carries field details
	KindAuth       ErrorKind = "auth"       // 401 or 403
	KindNotFound   ErrorKind = "not_found"  // 404
	KindConflict   ErrorKind = "conflict"   // 400/409 with a domain message
	KindTransport  ErrorKind = "transport"  // network failure, timeout, cancellation
)

// FieldError is one (location, message, type) triple from a 422 body.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// APIError is the single error type surfaced by the resource client.
type APIError struct {
	Kind       ErrorKind    `json:"kind"`
	StatusCode int          `json:"status_code,omitempty"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	// Canceled marks a transport error caused by context cancellation.
	// Canceled errors are never retried and never rendered.
	Canceled bool `json:"-"`
	cause    error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// AsAPIError unwraps err into an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsRetryable reports whether err is a transport error worth retrying.
// Only read paths consult this; mutations are never retried.
func IsRetryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindTransport && !apiErr.Canceled
}

// IsCanceled reports whether err is a cancellation, which subscribers must
// treat as silence rather than failure.
func IsCanceled(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Canceled
}

func newAuthError(status int, message string) *APIError {
	return &APIError{Kind: KindAuth, StatusCode: status, Message: message}
}

func newTransportError(message string, canceled bool, cause error) *APIError {
	return &APIError{Kind: KindTransport, Message: message, Canceled: canceled, cause: cause}
}
