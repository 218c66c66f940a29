// Package errors carries coded errors through the layout engine.
//
// Every error crossing a package boundary is an *Error holding a
// machine-readable Code, a human-readable message, and an optional cause.
// The CLI prints the message; the HTTP layer maps the code to a status.
//
// Code families:
//   - INVALID_*: input validation failures, recoverable by the caller
//   - DEGENERATE_*: geometry that cannot produce finite outputs
//   - CONFIG_*: configuration bugs, asserted at startup rather than patched
//   - *_NOT_FOUND: a named resource does not exist
//   - STORE/NETWORK/TIMEOUT: external collaborator failures
//
// Construct with New or Wrap, test with Is:
//
//	err := errors.New(errors.ErrCodeInvalidCard, "unknown card size: %s", raw)
//	err = errors.Wrap(errors.ErrCodeStore, cause, "list records from %s", uri)
//	if errors.Is(err, errors.ErrCodeStore) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code names an error category for programmatic handling.
type Code string

const (
	// Input validation
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidCard     Code = "INVALID_CARD"
	ErrCodeInvalidViewport Code = "INVALID_VIEWPORT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidProgress Code = "INVALID_PROGRESS"

	// Degenerate geometry
	ErrCodeDegenerateScroll Code = "DEGENERATE_SCROLL"
	ErrCodeDegenerateImage  Code = "DEGENERATE_IMAGE"

	// Configuration bugs, not runtime conditions
	ErrCodeConfigPhaseOrder Code = "CONFIG_PHASE_ORDER"
	ErrCodeConfig           Code = "CONFIG_ERROR"

	// Missing resources
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// External collaborators
	ErrCodeStore   Code = "STORE_ERROR"
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Everything else
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the stdlib errors helpers.
func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error from a code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error around a cause, preserving it for Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code. Wrapping may
// stack several coded errors; every layer is checked, not just the outermost.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns err's code, or ErrCodeInternal when err carries none, so
// callers mapping codes to HTTP statuses always get a usable value.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
