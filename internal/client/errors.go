package client

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input detected before any network call.
// Fully recoverable: the caller fixes the input and resubmits.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// APIError is a non-2xx response from the analysis backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError means the backend did not answer within the configured
// window. Kept distinct from other transport errors so callers can
// suggest text mode instead of showing a bare failure.
type TimeoutError struct {
	Endpoint string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out; try submitting the article text instead of a URL", e.Endpoint)
}

// IsValidation reports whether err is an input validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTimeout reports whether err is a backend timeout.
func IsTimeout(err error) bool {
	var t *TimeoutError
	return errors.As(err, &t)
}
