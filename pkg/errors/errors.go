// Package errors provides structured error types for panelview.
//
// Every layer above the render core (pipeline, CLI, HTTP service) reports
// failures as an [*Error] carrying a machine-readable [Code], so that callers
// can branch on the kind of failure without parsing messages:
//
//   - INVALID_*: the caller sent something unusable
//   - NOT_FOUND / FILE_NOT_FOUND: a referenced resource does not exist
//   - UNSUPPORTED: the request is valid but this build cannot serve it
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // reject request
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidPayload, decodeErr, "decode state")
package errors

import (
	"errors"
	"fmt"
)

// Code names a failure category. Codes are stable strings; the HTTP
// service returns them in the "code" field of error bodies.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"      // bad flag, query parameter or request shape
	ErrCodeInvalidPayload    Code = "INVALID_PAYLOAD"    // state JSON could not be decoded
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS" // width or height not positive in strict mode
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"     // unknown output format
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"     // config file rejected

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED" // e.g. PDF without rsvg-convert
)

// Error is a coded failure with an optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error around cause. A nil cause is allowed.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalid reports whether err is a caller mistake (any INVALID_* code).
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPayload, ErrCodeInvalidDimensions,
		ErrCodeInvalidFormat, ErrCodeInvalidConfig:
		return true
	}
	return false
}

// UserMessage is err's text without the code prefix, for terminal output.
func UserMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
