// Package errors provides structured error types for wordladder.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Two codes carry the failure taxonomy of graph construction and search:
//   - PRECONDITION_FAILED: mismatched word lengths, invalid start/goal ids,
//     a search started on a busy engine
//   - MALFORMED_INPUT: a word-list line that cannot be parsed
//
// "Not found" (goal unreachable, word absent from the vocabulary) is a normal
// search outcome and is reported as a result value by pkg/search. The
// NOT_FOUND code exists for surfaces that must turn such outcomes into an
// error, like HTTP handlers.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePrecondition, "word %q has length %d, want %d", w, len(w), n)
//	if errors.Is(err, errors.ErrCodePrecondition) {
//	    // Handle precondition violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction and search failures
	ErrCodePrecondition   Code = "PRECONDITION_FAILED"
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Precondition is shorthand for New(ErrCodePrecondition, ...).
func Precondition(format string, args ...any) *Error {
	return New(ErrCodePrecondition, format, args...)
}

// Malformed is shorthand for New(ErrCodeMalformedInput, ...).
func Malformed(format string, args ...any) *Error {
	return New(ErrCodeMalformedInput, format, args...)
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

// LineError locates a MALFORMED_INPUT failure inside a line-oriented source.
type LineError struct {
	Line int    // 1-based line number
	Text string // Offending line, trailing newline stripped
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q", e.Line, e.Text)
}

// Code returns the error code for this error type.
func (e *LineError) Code() Code {
	return ErrCodeMalformedInput
}
