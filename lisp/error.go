package lisp

import "errors"

// Errors produced by the reader.
var (
	ErrUnexpectedEOF        = errors.New("unexpected EOF while reading")
	ErrUnexpectedCloseParen = errors.New("unexpected )")
)

// Errors produced during evaluation.
var (
	ErrUnboundSymbol    = errors.New("unbound symbol")
	ErrEmptyApplication = errors.New("empty application")
	ErrNotAProcedure    = errors.New("not a procedure")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrStackOverflow    = errors.New("stack overflow")
)

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The underlying error is stored in the Err field while contextual
// information (the call stack) is stored in the Stack field.
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Err.Error()
}

// Unwrap allows errors.Is to match the sentinel errors of the package.
func (e *ErrorVal) Unwrap() error {
	return e.Err
}

// GoError returns an error that represents the LError v.  GoError returns
// nil if v is not an LError.
func GoError(v *LVal) error {
	if v == nil || v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}
