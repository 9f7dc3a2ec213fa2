// Package errors defines the coded errors shared by every exprflow package.
//
// An [Error] pairs a machine-readable [Code] with a message and an optional
// cause. Codes group failures by who can fix them:
//
//   - INVALID_*: the input, a flag or a config value is malformed
//   - UNSUPPORTED_CONSTRUCT, DUPLICATE_DEFINITION: the program parses but
//     cannot be turned into a dependency graph
//   - FILE_NOT_FOUND: a named input does not exist
//   - INTERNAL_ERROR, RENDER_FAILED: a bug or a failing external renderer
//
// Stage boundaries add context with fmt.Errorf("stage: %w", err); [Is] and
// [GetCode] look through that wrapping.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "source is empty")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // report and exit
//	}
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSyntax   Code = "INVALID_SYNTAX"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Graph construction errors
	ErrCodeUnsupportedConstruct Code = "UNSUPPORTED_CONSTRUCT"
	ErrCodeDuplicateDefinition  Code = "DUPLICATE_DEFINITION"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
	ErrCodeRender   Code = "RENDER_FAILED"
)

// Error is a coded error. Cause is optional.
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

// Unwrap returns the cause, so errors.Is matches sentinels such as
// depgraph.ErrDuplicateDefinition.
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

// Is reports whether any *Error in err's chain carries code. An outer
// error re-coding an inner one therefore matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
