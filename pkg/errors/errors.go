// Package errors gives nameplate failures a machine-readable [Code].
//
// The CLI prints [UserMessage], the HTTP view maps the code to a status and
// returns it in the JSON body, and the terminal board shows the message in
// its status line. Layout and shuffling never fail; codes come from the
// gesture state machine, input parsing and the outer surfaces.
//
//	if errors.Is(err, errors.ErrCodeCardNotFound) {
//	    // 404
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code. INVALID_* codes are bad input,
// *_NOT_FOUND codes name a missing card, file or route.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// ErrCodeInvalidState rejects a gesture that the current mode does not
	// allow, such as Done while idle.
	ErrCodeInvalidState Code = "INVALID_STATE"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeCardNotFound Code = "CARD_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without its code, or err.Error() for other errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is bad input: any INVALID_* code except
// INVALID_STATE.
func IsValidation(err error) bool {
	code := GetCode(err)
	return strings.HasPrefix(string(code), "INVALID_") && code != ErrCodeInvalidState
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
