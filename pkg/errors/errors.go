// Package errors provides structured error types for crossflow.
//
// The diagram builder itself never fails: it accepts any counts and always
// returns a complete option. Errors come from the layers around it (reading
// input files, decoding styles, the optional strict validation, the HTTP API)
// and carry a machine-readable code so the CLI and the server can react to
// them consistently.
//
// # Error Codes
//
//   - INVALID_*: input validation failures
//   - *NOT_FOUND: missing files or stored layouts
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported input format: %s", ext)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidCounts Code = "INVALID_COUNTS"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// Only the outermost *Error in the chain is considered.
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

// UserMessage returns the message of err without the code prefix.
// Plain errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is any of the INVALID_* codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidCounts, ErrCodeInvalidConfig,
		ErrCodeInvalidFormat, ErrCodeInvalidColor:
		return true
	}
	return false
}

// FieldError names the input field a validation failure refers to,
// e.g. "s.left" or "palette[2]".
type FieldError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
