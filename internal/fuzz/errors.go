package fuzz

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid system description: malformed membership
// breakpoints, a bad universe, or a rule referencing an undeclared variable
// or term. It is raised only by NewSystem; a built System can no longer fail
// this way.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Msg
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

func configErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// InvalidMethodError reports an unrecognized defuzzification method name.
// Raised at evaluate time; recoverable by the caller.
type InvalidMethodError struct {
	Name string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid defuzzification method %q", e.Name)
}

// ErrMissingInput is returned by Evaluate when a declared input variable has
// no crisp value in the input map. Wrapped with the variable name.
var ErrMissingInput = errors.New("missing input value")
