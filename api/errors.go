package api

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks fatal problems with inputs the run depends on:
	// malformed config, mismatched token sentinels, broken handler ordering.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks a value rejected by a handler's validator.
	ErrValidation = errors.New("validation failed")
)

// Error wraps one of the sentinel kinds with a message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Configf builds a configuration error.
func Configf(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}
