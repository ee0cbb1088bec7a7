package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound marks a missing contact or note. Callers wrap it with context.
var ErrNotFound = errors.New("not found")

// ValidationError carries every violated-field message from one submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidation returns nil when msgs is empty.
func NewValidation(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

// StorageError wraps an engine-level failure of a single operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Op + ": storage error"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Cause is the underlying engine message, suitable for showing to the user.
func (e *StorageError) Cause() string {
	if e == nil || e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Storage wraps err unless it is nil or already classified.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		se *StorageError
		ve *ValidationError
	)
	if errors.Is(err, ErrNotFound) || errors.As(err, &se) || errors.As(err, &ve) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func AsStorage(err error) (*StorageError, bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps the error taxonomy onto an HTTP status and a stable code.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if _, ok := AsValidation(err); ok {
		return New(http.StatusUnprocessableEntity, "validation_failed", err)
	}
	if IsNotFound(err) {
		return New(http.StatusNotFound, "not_found", err)
	}
	if _, ok := AsStorage(err); ok {
		return New(http.StatusInternalServerError, "storage_error", err)
	}
	return New(http.StatusInternalServerError, "internal", err)
}
