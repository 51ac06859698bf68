package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimeout marks a request that exceeded the configured deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrUnreachable marks a transport-level failure before any response.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrUnauthorized matches any 401 response via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDecodeFailed marks a response body that could not be decoded or
	// failed schema validation.
	ErrDecodeFailed = errors.New("response decode failed")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Is lets a 401 StatusError match ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}
