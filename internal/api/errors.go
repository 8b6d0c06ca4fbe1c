package api

import (
	"errors"
	"fmt"
)

// Sentinel failures callers branch on. ErrNotFound is a valid application
// state ("no work plan yet"), never something to report to the user.
// ErrUnauthorized means the stored token is no longer accepted and the
// session must be invalidated.
var (
	ErrNotFound     = errors.New("api: not found")
	ErrUnauthorized = errors.New("api: unauthorized")
)

// RequestError is a non-2xx outcome the server rejected deliberately:
// a validation failure, or a lifecycle precondition that was stale by the
// time the request arrived.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: request failed (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: request failed (%d)", e.Status)
}

// UnreachableError is a transport-level failure: the request never produced
// an HTTP response.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("api: server unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// IsNotFound reports whether err carries not-found semantics.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err means the session token was rejected.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
