// Package errors provides structured error types for the texture map loader.
//
// Operators surface exactly one message per invocation. The codes defined
// here let callers decide how to present a failure (error, warning, silent)
// without parsing message text.
//
// # Error Codes
//
//   - PRECONDITION_NOT_MET: the operation is inapplicable to the current
//     editor state (no target tree, wrong selection). Nothing was changed.
//   - MISSING_ROLE: the wiring selection lacks a Maps Loader group.
//   - INVALID_*: bad input or configuration.
//   - NOT_FOUND, FILE_NOT_FOUND: missing resources.
//   - LOAD_FAILED: a texture file could not be loaded.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePreconditionNotMet, "select 2 or 3 group nodes (got %d)", n)
//	if errors.Is(err, errors.ErrCodePreconditionNotMet) {
//	    // report and abort
//	}
//
//	err = errors.Wrap(errors.ErrCodeLoadFailed, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Operation-level refusals
	ErrCodePreconditionNotMet Code = "PRECONDITION_NOT_MET"
	ErrCodeMissingRole        Code = "MISSING_ROLE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeLoadFailed   Code = "LOAD_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRefusal reports whether err means the operation declined to run and
// left the scene untouched.
func IsRefusal(err error) bool {
	switch GetCode(err) {
	case ErrCodePreconditionNotMet, ErrCodeMissingRole:
		return true
	}
	return false
}
