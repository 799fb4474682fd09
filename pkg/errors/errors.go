// Package errors gives quadart failures a machine-readable [Code].
//
// The CLI prints [UserMessage] and the HTTP API picks a status from
// [GetCode], so neither has to match on error text.
//
//	if d < 0 {
//	    return errors.New(errors.ErrCodeInvalidInput, "max_depth must be >= 0, got %d", d)
//	}
//	...
//	return errors.Wrap(errors.ErrCodeSinkWrite, err, "save %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code names a failure kind. Codes are part of the HTTP API's error body.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // bad option, flag or query value
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // unknown output format
	ErrCodeInvalidPath   Code = "INVALID_PATH"   // unusable output path
	ErrCodeInvalidSource Code = "INVALID_SOURCE" // input bytes are not a decodable image

	ErrCodeSinkWrite Code = "SINK_WRITE_FAILURE"

	// ErrCodeCapacityExceeded tags the truncation warning. Decomposition
	// itself never fails with it.
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"

	ErrCodeNotFound     Code = "NOT_FOUND"      // remote image missing
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND" // local input or config missing

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.detail()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) detail() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage is err's text without the code prefix.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.detail()
	}
	return err.Error()
}

// As forwards to the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
