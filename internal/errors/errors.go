// Package errors carries the error taxonomy for regpad's collaborators.
// The simulation engine itself never fails; only document import and
// storage access produce errors, and both need a user-facing rendering.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ImportError  ErrorType = "ImportError"
	StorageError ErrorType = "StorageError"
)

// Error represents a collaborator failure with enough context to show the
// user what went wrong and where.
type Error struct {
	Type    ErrorType
	Message string
	Path    string // file or database path, if any
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Type, e.Message))
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Path))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewImport builds an invalid-file error surfaced as a blocking message.
func NewImport(message, path string, cause error) *Error {
	return &Error{Type: ImportError, Message: message, Path: path, Cause: cause}
}

// NewStorage builds a storage-access error. Callers log these and degrade
// to an empty result rather than propagating.
func NewStorage(message, path string, cause error) *Error {
	return &Error{Type: StorageError, Message: message, Path: path, Cause: cause}
}

// IsType reports whether err or anything it wraps is an Error of the given
// type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}
