// Package errors provides structured error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// This uses fmt.Errorf with %w verb for proper error chain support.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Error kinds. Every constructor below wraps one of these so callers can
// classify with Is regardless of how much context was added on the way up.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrConfiguration    = errors.New("configuration error")
	ErrInternal         = errors.New("internal error")
)

// Validation returns an ErrValidation carrying message.
func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound for the given resource and key.
func NotFound(resource, key string) error {
	return fmt.Errorf("%s %q: %w", resource, key, ErrNotFound)
}

// StoreUnavailable wraps a transport or connection failure from the backing store.
func StoreUnavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

func Configuration(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

func ConfigurationWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}

func InternalWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, message, cause)
}

// Kind names the error class of err for transports that report it as a string.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "internal"
	}
}
