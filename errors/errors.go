package errors

import (
	"errors"
	"fmt"
)

// Code classifies a tree-building or printing failure.
type Code string

const (
	// CodeNoMemory indicates a build resource limit was exhausted while
	// constructing the tree.
	CodeNoMemory Code = "no-memory"
	// CodeInternal indicates an event handler ran in an invalid state,
	// such as character data with no open element.
	CodeInternal Code = "internal"
	// CodeIO indicates the output sink reported a write failure.
	CodeIO Code = "io"
	// CodeTokenizer carries a diagnostic from the underlying tokenizer.
	CodeTokenizer Code = "tokenizer"
)

// Error describes a parse or print failure with a taxonomy code and
// optional line/column context from the tokenizer.
type Error struct {
	Code    Code
	Message string
	Line    int
	Column  int
	Err     error
}

// Error formats the failure for display, including code, message, and position.
func (e *Error) Error() string {
	if e == nil {
		return "scew <nil>"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("[%s] %s at line %d, column %d", e.Code, msg, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with a code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds an Error around an underlying cause. The cause's message is
// used for display unless a message is set later.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// AsError extracts a taxonomy error from an error chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// CodeOf returns the taxonomy code of an error, or the empty code when the
// chain carries none.
func CodeOf(err error) Code {
	e, ok := AsError(err)
	if !ok {
		return ""
	}
	return e.Code
}

// Is reports whether the error chain carries the given taxonomy code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
