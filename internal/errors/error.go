package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryHydration Category = "hydration"
	CategoryApply     Category = "apply"
	CategoryRender    Category = "render"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// CargoError is a structured error with a registered code, a suggestion and
// documentation.
type CargoError struct {
	// Code is a unique error identifier (e.g., "E040").
	Code string

	// Category is the error type (hydration, apply, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Subject names the thing the error is about: a file, an island, a route.
	Subject string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CargoError) Error() string {
	msg := e.Message
	if e.Subject != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Subject)
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CargoError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a CargoError with the same code. Errors
// without a code only match themselves.
func (e *CargoError) Is(target error) bool {
	t, ok := target.(*CargoError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithSubject records what the error is about.
func (e *CargoError) WithSubject(s string) *CargoError {
	e.Subject = s
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CargoError) WithSuggestion(s string) *CargoError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CargoError) WithDetail(d string) *CargoError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CargoError) Wrap(err error) *CargoError {
	e.Wrapped = err
	return e
}

// New creates a CargoError from a registered error code.
func New(code string) *CargoError {
	template, ok := registry[code]
	if !ok {
		return &CargoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CargoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new CargoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CargoError {
	return &CargoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CargoError. Errors that already
// carry a CargoError in their chain are returned as that CargoError.
func FromError(err error, code string) *CargoError {
	if err == nil {
		return nil
	}
	var ce *CargoError
	if errors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err's chain contains a CargoError with code.
func HasCode(err error, code string) bool {
	var ce *CargoError
	for err != nil {
		if !errors.As(err, &ce) {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Wrapped
	}
	return false
}
