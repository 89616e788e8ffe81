package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies an error. Codes compare with errors.Is, so callers can
// match on a class without caring about the message.
type Code string

func (c Code) Error() string { return string(c) }

// Error keeps a code and an underlying error (with stack/message from pkg/errors).
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any Code carried along the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(Code)
	if !ok {
		return false
	}
	return e.Code == t
}

func Newf(code Code, format string, args ...any) error {
	return &Error{
		Code: code,
		Err:  errors.Errorf(format, args...),
	}
}

func New(code Code, message string) error {
	return &Error{
		Code: code,
		Err:  errors.New(message),
	}
}

func PureNew(message string) error {
	return stderrors.New(message)
}

// Wrapf wraps err with a code, message and stack. A nil err stays nil.
func Wrapf(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrapf(err, format, args...),
	}
}

// Wrap is Wrapf without formatting. A nil err stays nil.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrap(err, message),
	}
}

// CodeOf returns the outermost code in the chain, or "" when none is set.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	var c Code
	if stderrors.As(err, &c) {
		return c
	}
	return ""
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As[T error](err error) (T, bool) {
	var target T
	if stderrors.As(err, &target) {
		return target, true
	}
	return target, false
}
