// Package errors provides standardized error types and helpers for the
// PAGE-to-TEI converter.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrOutOfRange indicates an annotation range outside its line's text
	ErrOutOfRange = errors.New("annotation out of range")
	// ErrUnknownKind indicates an annotation kind outside the closed set
	ErrUnknownKind = errors.New("unknown annotation kind")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// RangeError reports an annotation whose offset/length falls outside the
// bounds of its line's text. Index identifies the offending descriptor
// within the line's annotation sequence, so the caller can skip it and
// retry without guessing.
type RangeError struct {
	Index   int    // position in the line's annotation sequence
	Kind    string // annotation kind, for diagnostics
	Offset  int
	Length  int
	TextLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("annotation %d (%s): range [%d,%d) exceeds text length %d",
		e.Index, e.Kind, e.Offset, e.Offset+e.Length, e.TextLen)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// UnknownKindError reports an annotation kind outside the closed set.
// These must never be dropped silently: the conversion exists to preserve
// the scholarly record, so every unmapped descriptor is surfaced.
type UnknownKindError struct {
	Kind   string // kind string as it appeared in the source
	LineID string // owning line, if known
}

func (e *UnknownKindError) Error() string {
	if e.LineID != "" {
		return fmt.Sprintf("unknown annotation kind %q on line %s", e.Kind, e.LineID)
	}
	return fmt.Sprintf("unknown annotation kind %q", e.Kind)
}

func (e *UnknownKindError) Unwrap() error {
	return ErrUnknownKind
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "PAGE-XML", "custom", "preset")
	Path    string // File path or element ID, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
