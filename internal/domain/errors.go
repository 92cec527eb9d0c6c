package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAuthToken is returned before any network call when no token is stored
	ErrMissingAuthToken = errors.New("no auth token")

	// ErrTransport covers network failures and non-success HTTP statuses
	ErrTransport = errors.New("network or http failure")

	// ErrDecode is returned when a response body cannot be deserialized
	ErrDecode = errors.New("malformed response body")
)

const fallbackErrorMessage = "unexpected error"

// APIError is a non-success response from the detections API
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
}

// Unwrap classifies every APIError as a transport failure
func (e *APIError) Unwrap() error {
	return ErrTransport
}

// ErrorMessage converts any load failure into the text shown on screen
func ErrorMessage(err error) string {
	if err == nil {
		return fallbackErrorMessage
	}
	if errors.Is(err, ErrMissingAuthToken) {
		return ErrMissingAuthToken.Error()
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackErrorMessage
}
