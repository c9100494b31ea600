// Package errors provides structured error types for graphmark.
//
// Every failure while processing annotations is classified by a
// machine-readable code so the pipeline can count it and keep going:
// no annotation-level or file-level error aborts a run.
//
// # Error Codes
//
//   - MALFORMED_PAYLOAD: annotation payload could not be decoded
//   - UNKNOWN_*: a closed enumeration received an unexpected value
//   - MISSING_ATTRIBUTE: a required attribute is absent or empty
//   - UNDEFINED_GRAPH: a data annotation references an unregistered graph id
//   - UNRESOLVED_ENDPOINT: an edge references a node name never defined
//   - SOURCE_IO / OUTPUT_IO: per-source and per-artifact I/O failures
//   - CONFIG_INCONSISTENCY: a delimiter or style table entry violates its
//     own invariants (logged, the entry is skipped)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingAttribute, "required attribute %q not found or is empty", "graphid")
//	if errors.Is(err, errors.ErrCodeMissingAttribute) {
//	    // Count it and continue.
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Annotation decoding errors
	ErrCodeMalformedPayload Code = "MALFORMED_PAYLOAD"
	ErrCodeUnknownCommand   Code = "UNKNOWN_COMMAND"
	ErrCodeMissingAttribute Code = "MISSING_ATTRIBUTE"
	ErrCodeUnknownEnum      Code = "UNKNOWN_ENUM"

	// Graph model errors
	ErrCodeUndefinedGraph     Code = "UNDEFINED_GRAPH"
	ErrCodeUnresolvedEndpoint Code = "UNRESOLVED_ENDPOINT"

	// Configuration errors
	ErrCodeConfigInconsistency Code = "CONFIG_INCONSISTENCY"
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"

	// I/O errors
	ErrCodeSourceIO Code = "SOURCE_IO"
	ErrCodeOutputIO Code = "OUTPUT_IO"

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
