package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for transport-level failures.
var (
	// ErrUnreachable means the backend could not be reached at all.
	ErrUnreachable = errors.New("cannot connect to backend")
	// ErrTimeout means the call exceeded the per-call timeout.
	ErrTimeout = errors.New("request timed out")
)

// HTTPError is returned for any response with status in [400, 600).
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

// UnexpectedError wraps failures that fit no other category
// (malformed URLs, body encoding problems and the like).
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "unexpected error: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// IsUnreachable reports whether err means the backend was unreachable.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout reports whether err means the call timed out.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// StatusOf returns the HTTP status of err, or 0 when err carries none.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// userMessageLimit caps the length of messages shown to the operator.
// The full cause still travels up the error chain for debug logging.
const userMessageLimit = 120

// UserMessage converts any client error into a short human-readable line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnreachable):
		return "Cannot connect to backend. Make sure the server is running."
	case errors.Is(err, ErrTimeout):
		return "API request timed out (check backend status)"
	}
	msg := err.Error()
	if len(msg) > userMessageLimit {
		msg = msg[:userMessageLimit]
	}
	return "API error: " + msg
}
