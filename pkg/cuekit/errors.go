package cuekit

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrServerUnreachable indicates the API endpoint could not be reached.
	ErrServerUnreachable = errors.New("clickup api is unreachable")
	// ErrSubtasksNotLoaded indicates subtask access on a task that was
	// fetched without subtask inclusion. Re-fetch with WithSubtasks.
	ErrSubtasksNotLoaded = errors.New("subtasks not loaded: task was fetched without subtask inclusion")

	// errTimestampInSeconds guards against second-resolution timestamps
	// being fed to millisecond conversion.
	errTimestampInSeconds = errors.New("timestamp lands in 1970: input is probably in seconds, not milliseconds")
)

// MissingFieldError indicates a custom field name that is not declared on a
// task record at all.
type MissingFieldError struct {
	Field     string
	Available []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("unable to find custom field %q; available fields are %v", e.Field, e.Available)
}

// MissingValueError indicates a custom field that is declared on a task
// record but carries no usable value.
type MissingValueError struct {
	Field string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("custom field %q has no value", e.Field)
}

// APIError represents an error response from the ClickUp API.
type APIError struct {
	StatusCode int
	Code       string // ClickUp ECODE, e.g. "OAUTH_019"
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("clickup api error %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("clickup api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Helper functions to check error types.

// IsMissingField returns true if the error indicates an undeclared custom field.
func IsMissingField(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

// IsMissingValue returns true if the error indicates a declared field without a value.
func IsMissingValue(err error) bool {
	var e *MissingValueError
	return errors.As(err, &e)
}

// IsSubtasksNotLoaded returns true if the error indicates subtask access on a
// task fetched without subtask inclusion.
func IsSubtasksNotLoaded(err error) bool {
	return errors.Is(err, ErrSubtasksNotLoaded)
}

// IsServerUnreachable returns true if the error indicates the API endpoint
// could not be reached.
func IsServerUnreachable(err error) bool {
	return errors.Is(err, ErrServerUnreachable)
}

// IsNotFound returns true if the error is an API error with HTTP status 404.
func IsNotFound(err error) bool {
	return hasStatusCode(err, 404)
}

// IsAuthFailed returns true if the error is an API error with HTTP status 401.
func IsAuthFailed(err error) bool {
	return hasStatusCode(err, 401)
}

// IsRateLimited returns true if the error is an API error with HTTP status 429.
func IsRateLimited(err error) bool {
	return hasStatusCode(err, 429)
}

func hasStatusCode(err error, status int) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
