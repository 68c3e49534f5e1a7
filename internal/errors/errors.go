package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller supplied no identifying data for a mutation
	CodeInvalidArgument Code = "invalid_argument"

	// CodeParseError indicates a serialized record has the wrong shape or type
	CodeParseError Code = "parse_error"

	// CodeNotFound indicates a requested attribute, stat, modifier or file was not found
	CodeNotFound Code = "not_found"

	// CodeNotSupported indicates an operation that is intentionally left unimplemented
	CodeNotSupported Code = "not_supported"

	// CodeMissingSetter indicates a record line appeared before any section header
	CodeMissingSetter Code = "missing_setter"

	// CodeUnknownSection indicates a section header that is not recognized
	CodeUnknownSection Code = "unknown_section"

	// CodeAlreadyExists indicates an attempt to create a character file that already exists
	CodeAlreadyExists Code = "already_exists"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var charErr *Error
	if errors.As(err, &charErr) {
		return &Error{
			Code:    charErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(charErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// ParseErrorf creates a formatted parse error
func ParseErrorf(format string, args ...any) *Error {
	return Newf(CodeParseError, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// NotSupported creates a not supported error
func NotSupported(message string) *Error {
	return New(CodeNotSupported, message)
}

// MissingSetterf creates a formatted missing setter error
func MissingSetterf(format string, args ...any) *Error {
	return Newf(CodeMissingSetter, format, args...)
}

// UnknownSectionf creates a formatted unknown section error
func UnknownSectionf(format string, args ...any) *Error {
	return Newf(CodeUnknownSection, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var charErr *Error
	if errors.As(err, &charErr) {
		return charErr.Code == code
	}
	return false
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsParseError checks if the error is a parse error
func IsParseError(err error) bool {
	return Is(err, CodeParseError)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsNotSupported checks if the error is a not supported error
func IsNotSupported(err error) bool {
	return Is(err, CodeNotSupported)
}

// IsMissingSetter checks if the error is a missing setter error
func IsMissingSetter(err error) bool {
	return Is(err, CodeMissingSetter)
}

// IsUnknownSection checks if the error is an unknown section error
func IsUnknownSection(err error) bool {
	return Is(err, CodeUnknownSection)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var charErr *Error
	if errors.As(err, &charErr) {
		return charErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var charErr *Error
	if errors.As(err, &charErr) {
		return charErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
