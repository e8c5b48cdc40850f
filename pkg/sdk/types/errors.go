package types

import (
	"errors"
	"fmt"
)

var ErrMissingKey = errors.New("missing key")
var ErrCoercion = errors.New("coercion failed")

// MissingKeyError reports a lookup of an attribute name or type tag that was never declared
type MissingKeyError struct {
	Key string
}

func NewMissingKeyError(key string) *MissingKeyError {
	return &MissingKeyError{Key: key}
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q is not registered", e.Key)
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrMissingKey }

// CoercionError reports a value that could not be cast to its declared type
type CoercionError struct {
	Value  any
	Target string
	reason string
}

func NewCoercionError(value any, target string) *CoercionError {
	return &CoercionError{Value: value, Target: target}
}

func (e *CoercionError) because(reason string) *CoercionError {
	e.reason = reason
	return e
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("unable to cast %v (%T) to %s", e.Value, e.Value, e.Target)
	if e.reason != "" {
		msg += ": " + e.reason
	}
	return msg
}

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }
