package docgraph

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors.
var (
	// ErrUnknownFieldKind is returned when a field kind has no conversion rule.
	ErrUnknownFieldKind = errors.New("docgraph: unknown field kind")

	// ErrAlreadyRegistered is returned when a model name is registered twice.
	ErrAlreadyRegistered = errors.New("docgraph: model already registered")

	// ErrInvalidField is returned for malformed field declarations.
	ErrInvalidField = errors.New("docgraph: invalid field")
)

// ConversionError is returned when a field kind has no matching conversion
// rule. It is not retryable: the fix is a new rule or a different field kind.
type ConversionError struct {
	Owner string // owning model
	Field string // field name
	Kind  string // kind name of the field
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	name := e.Field
	if e.Owner != "" {
		name = e.Owner + "." + e.Field
	}
	return fmt.Sprintf("docgraph: don't know how to convert field %s (%s)", name, e.Kind)
}

// Is reports whether the target error matches ConversionError.
// This allows errors.Is(convErr, ErrUnknownFieldKind) to return true.
func (e *ConversionError) Is(err error) bool {
	return err == ErrUnknownFieldKind
}

// NewConversionError returns a new ConversionError for the given field.
func NewConversionError(owner, field, kind string) *ConversionError {
	return &ConversionError{Owner: owner, Field: field, Kind: kind}
}

// IsConversionError returns true if the error is a ConversionError.
func IsConversionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e)
}

// RegistryError is returned when a model cannot be registered.
type RegistryError struct {
	Model string
}

// Error returns the error string.
func (e *RegistryError) Error() string {
	return fmt.Sprintf("docgraph: model %q already registered", e.Model)
}

// Is reports whether the target error matches RegistryError.
func (e *RegistryError) Is(err error) bool {
	return err == ErrAlreadyRegistered
}

// NewRegistryError returns a new RegistryError for the given model.
func NewRegistryError(model string) *RegistryError {
	return &RegistryError{Model: model}
}

// FieldError represents a malformed field declaration.
type FieldError struct {
	Owner string // owning model
	Field string // field name
	Err   error  // underlying error
}

// Error returns the error string.
func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString("docgraph: invalid field ")
	if e.Owner != "" {
		b.WriteString(e.Owner)
		b.WriteString(".")
	}
	fmt.Fprintf(&b, "%q", e.Field)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches FieldError.
func (e *FieldError) Is(err error) bool {
	return err == ErrInvalidField
}

// NewFieldError returns a new FieldError.
func NewFieldError(owner, field string, err error) *FieldError {
	return &FieldError{Owner: owner, Field: field, Err: err}
}

// IsFieldError returns true if the error is a FieldError.
func IsFieldError(err error) bool {
	if err == nil {
		return false
	}
	var e *FieldError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "docgraph: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("docgraph: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
