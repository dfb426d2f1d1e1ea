package diagerr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure category of an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInputType
	KindInputValue
	KindCardinality
	KindNumerical
)

// String returns the stable name used in logs and API responses.
func (k Kind) String() string {
	switch k {
	case KindInputType:
		return "input_type"
	case KindInputValue:
		return "input_value"
	case KindCardinality:
		return "cardinality_mismatch"
	case KindNumerical:
		return "numerical"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the analysis packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, diagerr.ErrInputValue) matches any input value failure.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrInputType   = &Error{Kind: KindInputType}
	ErrInputValue  = &Error{Kind: KindInputValue}
	ErrCardinality = &Error{Kind: KindCardinality}
	ErrNumerical   = &Error{Kind: KindNumerical}
)

// InputType returns a KindInputType error.
func InputType(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInputType, Message: fmt.Sprintf(format, args...)}
}

// InputValue returns a KindInputValue error.
func InputValue(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInputValue, Message: fmt.Sprintf(format, args...)}
}

// Cardinality returns a KindCardinality error.
func Cardinality(format string, args ...interface{}) *Error {
	return &Error{Kind: KindCardinality, Message: fmt.Sprintf(format, args...)}
}

// Numerical wraps cause as a KindNumerical error.
func Numerical(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNumerical, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsInputType reports whether err has KindInputType.
func IsInputType(err error) bool { return KindOf(err) == KindInputType }

// IsInputValue reports whether err has KindInputValue.
func IsInputValue(err error) bool { return KindOf(err) == KindInputValue }

// IsCardinality reports whether err has KindCardinality.
func IsCardinality(err error) bool { return KindOf(err) == KindCardinality }

// IsNumerical reports whether err has KindNumerical.
func IsNumerical(err error) bool { return KindOf(err) == KindNumerical }

// IsInput reports whether err was caused by caller-supplied input.
func IsInput(err error) bool {
	switch KindOf(err) {
	case KindInputType, KindInputValue, KindCardinality:
		return true
	}
	return false
}
