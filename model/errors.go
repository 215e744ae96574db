package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned by Span.Validate, wrapped in a FieldError
// naming the offending field.
var (
	ErrMissingTraceID       = errors.New("trace id is required")
	ErrMissingID            = errors.New("span id is required")
	ErrNotLowerHex          = errors.New("not a lowercase hex string")
	ErrIDLength             = errors.New("hex id has the wrong length")
	ErrUnknownKind          = errors.New("unknown span kind")
	ErrNotIPv4              = errors.New("not an IPv4 address")
	ErrNotIPv6              = errors.New("not an IPv6 address")
	ErrEmptyAnnotationValue = errors.New("annotation value is required")
	ErrEmptyTagKey          = errors.New("tag key is required")
)

// FieldError reports a validation failure with the path of the span field
// that caused it.
type FieldError struct {
	FieldPath []string // e.g., ["annotations", "2", "value"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid span field %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapField prefixes an error with the path of the offending field
func wrapField(err error, path ...string) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append(path, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: path,
		Err:       err,
	}
}
