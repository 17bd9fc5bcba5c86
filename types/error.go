package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the failures raised by value operations
type ErrorCode int

const (
	E_NONE   ErrorCode = 0
	E_TYPE   ErrorCode = 1
	E_RANGE  ErrorCode = 2
	E_SYNTAX ErrorCode = 3
)

// String returns the code name
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_TYPE:
		return "E_TYPE"
	case E_RANGE:
		return "E_RANGE"
	case E_SYNTAX:
		return "E_SYNTAX"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_TYPE:
		return "Type error"
	case E_RANGE:
		return "Range error"
	case E_SYNTAX:
		return "Syntax error"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a string like "E_TYPE" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	switch s {
	case "E_NONE":
		return E_NONE, true
	case "E_TYPE":
		return E_TYPE, true
	case "E_RANGE":
		return E_RANGE, true
	case "E_SYNTAX":
		return E_SYNTAX, true
	default:
		return E_NONE, false
	}
}

// Sentinels for errors.Is. The coded ones match any *Error with the same code.
var (
	ErrType   = &Error{Code: E_TYPE}
	ErrRange  = &Error{Code: E_RANGE}
	ErrSyntax = &Error{Code: E_SYNTAX}

	ErrEmptyFunction     = errors.New("empty function called")
	ErrSignatureMismatch = errors.New("function signature mismatch")
)

// Error is the error type returned by every value operation
type Error struct {
	Code ErrorCode // E_TYPE, E_RANGE or E_SYNTAX
	Op   string    // operation that failed
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	s := e.Code.String()
	if e.Op != "" {
		s += " in " + e.Op
	}
	msg := e.Msg
	if msg == "" && e.Err == nil {
		msg = e.Code.Message()
	}
	if msg != "" {
		s += ": " + msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, and by operation when the target names one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

// NewTypeError builds an E_TYPE error
func NewTypeError(op, format string, args ...any) error {
	return &Error{Code: E_TYPE, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NewRangeError builds an E_RANGE error
func NewRangeError(op, format string, args ...any) error {
	return &Error{Code: E_RANGE, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NewSyntaxError wraps a parser failure into an E_SYNTAX error.
// The parser's own error stays reachable through Unwrap only.
func NewSyntaxError(op string, err error) error {
	return &Error{Code: E_SYNTAX, Op: op, Msg: "malformed document", Err: err}
}

func typeErrorCause(op string, cause error, format string, args ...any) error {
	return &Error{Code: E_TYPE, Op: op, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// CodeOf returns the ErrorCode carried by err, or E_NONE
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return E_NONE
}
