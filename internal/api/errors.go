package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an operation that requires a bearer
// token runs without one, with an expired one, or when the server answers 401.
var ErrUnauthenticated = errors.New("not authenticated")

// NetworkError is a transport-level failure: the request never produced a
// response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message carries whatever detail the
// server put in the error body, possibly empty.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("server rejected request: status %d: %s", e.Status, e.Message)
}

// ValidationError is a client-side rejection of input; no request was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
