package options

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField indicates an override names a field outside the bundle.
	ErrUnknownField = errors.New("unknown field")
	// ErrBadValue indicates an override value has the wrong type for its field.
	ErrBadValue = errors.New("invalid value")
	// ErrDuplicateField indicates a field was overridden twice in one input.
	ErrDuplicateField = errors.New("duplicate field")
)

// ConfigValidationError reports an override that could not be applied.
// Field holds the name as supplied, Value the offending input rendered as text.
type ConfigValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("option %q: invalid value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("option %q: value %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigValidationError) Unwrap() error { return e.Err }

func invalid(field string, value any, err error) *ConfigValidationError {
	return &ConfigValidationError{Field: field, Value: fmt.Sprint(value), Err: err}
}
