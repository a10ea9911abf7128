package domain

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError is a non-success response from the remote API.
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote returned status %d", e.Code)
	}
	return fmt.Sprintf("remote returned status %d: %s", e.Code, e.Message)
}

// FriendlyError turns an error into a message fit for end users.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}
	var status *StatusError
	code := 0
	if errors.As(err, &status) {
		code = status.Code
	}
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrUnauthorized) || code == 401 || strings.Contains(msg, "unauthorized"):
		return "Sign-in failed. Check your access token."
	case errors.Is(err, ErrRateLimited) || code == 429 || strings.Contains(msg, "too many requests"):
		return "Too many requests. Please try again shortly."
	case errors.Is(err, ErrUnavailable) || strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused"):
		return "Network error. Please check your connection and try again."
	case strings.Contains(msg, "database") || strings.Contains(msg, "server"):
		return "Something went wrong on our side. Please try again."
	case code >= 500:
		return "Service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
