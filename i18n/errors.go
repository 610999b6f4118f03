package i18n

import (
	"errors"
	"fmt"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
	Format(provider MessageProvider) string
}

// TrError represents a translatable error with optional formatting arguments
// and error wrapping support. Copies made through WithArgs and Wrap share the
// sentinel of the error they were derived from, so errors.Is matches any copy
// against the package-level variable.
//
// Example usage:
//
//	err := NewError("slashopt.error.invalid_choice")
//	err = err.WithArgs("colour")
//	err = err.Wrap(originalError)
type TrError struct {
	// The sentinel error value for comparison with errors.Is
	sentinel error
	// The translation key
	key string
	// Optional format arguments
	args []interface{}
	// Optional wrapped error
	wrapped error
	// Provider used by Error
	messageProvider MessageProvider
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return NewErrorWithProvider(key, getDefaultProvider())
}

// NewErrorWithProvider creates a new translatable error with a key and specific provider
func NewErrorWithProvider(key string, provider MessageProvider) *TrError {
	return &TrError{
		sentinel:        errors.New(key),
		key:             key,
		messageProvider: provider,
	}
}

// Error returns the message of the error's provider, formatted with args if provided
func (e *TrError) Error() string {
	return e.Format(e.messageProvider)
}

// Format renders the error through the given provider. Wrapped translatable
// errors are rendered through the same provider.
func (e *TrError) Format(provider MessageProvider) string {
	msg := provider.GetMessage(e.key)
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}

	if e.wrapped == nil {
		return msg
	}

	var te TranslatableError
	if errors.As(e.wrapped, &te) {
		return fmt.Sprintf("%s: %s", msg, te.Format(provider))
	}

	return fmt.Sprintf("%s: %v", msg, e.wrapped)
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            args,
		wrapped:         e.wrapped,
		messageProvider: e.messageProvider,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel:        e.sentinel,
		key:             e.key,
		args:            e.args,
		wrapped:         err,
		messageProvider: e.messageProvider,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}

	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

// SetProvider changes the provider used by Error.
func (e *TrError) SetProvider(provider MessageProvider) {
	e.messageProvider = provider
}
