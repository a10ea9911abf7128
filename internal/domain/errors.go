package domain

import (
	"errors"
	"time"
)

// Domain errors.
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid import step transition")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrNoDueDate           = errors.New("task has no parseable due date")
	ErrNothingToImport     = errors.New("no valid rows to import")
	ErrEmptyFile           = errors.New("file contains no rows")
	ErrUnknownDialect      = errors.New("unknown tabular dialect")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrUnavailable         = errors.New("backend unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRateLimited         = errors.New("too many requests")
	ErrMailNotConfigured   = errors.New("mail delivery is not configured")
	ErrConfigExists        = errors.New("config file already exists")
	ErrNoOwner             = errors.New("no account owner configured (set [account] owner)")
	ErrRemoteNotConfigured = errors.New("no remote server configured (set [remote] url)")
)

// ErrInvalidInput marks errors caused by bad user input.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries a user-facing message for rejected input.
// errors.Is(err, ErrInvalidInput) reports true for it.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RateLimitError reports a refused request and when to retry.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return ErrRateLimited.Error()
}

// Is matches ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
