package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrCacheMiss will throw if the requested key is absent from the session cache
	ErrCacheMiss = errors.New("cache miss")
	// ErrNoSession will throw if an operation needs a session token but none is stored
	ErrNoSession = errors.New("no active session")
)

// TransportError wraps a connectivity failure: the request never produced a
// server verdict, so the intent is user-retriable after rollback.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a rejection by the server (non-2xx). The condition is
// unlikely to resolve by retrying, so callers should not auto-retry.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected by server with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s rejected by server with status %d: %s", e.Op, e.Status, e.Message)
}

// MismatchWarning reports fields the server did not echo back as sent during
// a profile save. It is a partial success, not a failure: the server value
// has already won locally, the user just needs to be told.
type MismatchWarning struct {
	Fields []string
}

func (w *MismatchWarning) Error() string {
	return "server did not accept fields: " + strings.Join(w.Fields, ", ")
}

// IsRecoverable reports whether err is a failure that rolled the optimistic
// mutation back and can be resolved by the user (retry or give up), as
// opposed to a local validation error that never left the device.
func IsRecoverable(err error) bool {
	var te *TransportError
	var se *ServerError
	return errors.As(err, &te) || errors.As(err, &se)
}
