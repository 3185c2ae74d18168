package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidValue indicates a value of the right type that is not allowed.
	ErrInvalidValue = errors.New("invalid value")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// TypeError is returned when a raw value has the wrong shape.
type TypeError struct {
	// Path is the setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is implements error matching for TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ValueError is returned when a value has the right type but is out of range
// or otherwise unusable.
type ValueError struct {
	Path   string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s (value: %v)", e.Path, e.Reason, e.Value)
}

// Is implements error matching for ValueError.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Issue records a recovered field failure: the field kept its default and
// loading continued.
type Issue struct {
	// Path is the dot-separated setting path.
	Path string
	// Value is the raw value that was rejected.
	Value any
	// Default describes the value substituted for it.
	Default string
	// Err is the reason the value was rejected.
	Err error
}

// Error implements the error interface.
func (i *Issue) Error() string {
	return fmt.Sprintf("%v; using %s", i.Err, i.Default)
}

// Unwrap returns the underlying error.
func (i *Issue) Unwrap() error {
	return i.Err
}
