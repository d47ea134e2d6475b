// Package errors provides structured error types for the report pipeline.
// Errors carry a stable code, a category, optional context, and remediation
// suggestions so callers can decide between aborting the batch and degrading
// a single row.
package errors

import (
	"fmt"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig Category = "config" // Configuration loading/parsing errors
	CategoryInput  Category = "input"  // Input spreadsheet errors (fatal for the run)
	CategoryRow    Category = "row"    // Per-row processing errors (batch continues)
	CategoryAsset  Category = "asset"  // Logo/brand asset resolution errors (row degrades)
	CategoryRender Category = "render" // Chart rendering errors (slot is skipped)
	CategoryReport Category = "report" // PDF assembly errors (row fails)
	CategoryOutput Category = "output" // Output spreadsheet errors (fatal at end of run)
)

// PipelineError is a structured error with context and suggestions.
// It implements the error interface and supports error wrapping.
type PipelineError struct {
	// Code is a unique identifier for this error type (e.g., "INPUT_NOT_FOUND")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error (for wrapping)
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
// This enables errors.Is() and errors.As() to work with PipelineError.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target for errors.Is() checks.
// Two PipelineErrors match if they have the same Code.
func (e *PipelineError) Is(target error) bool {
	if t, ok := target.(*PipelineError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new PipelineError with the given code, category, and message.
func New(code string, category Category, message string) *PipelineError {
	return &PipelineError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Wrap creates a PipelineError wrapping an underlying cause.
func Wrap(err error, code string, category Category, message string) *PipelineError {
	return New(code, category, message).WithCause(err)
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *PipelineError) WithContext(key, value string) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *PipelineError) WithCause(cause error) *PipelineError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation suggestion and returns the error for chaining.
func (e *PipelineError) WithSuggestion(suggestion string) *PipelineError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// AsPipelineError attempts to convert an error to a PipelineError.
// Returns the PipelineError and true if successful, nil and false otherwise.
func AsPipelineError(err error) (*PipelineError, bool) {
	if err == nil {
		return nil, false
	}
	if pe, ok := err.(*PipelineError); ok {
		return pe, true
	}
	return nil, false
}

// CodeOf returns the code of err if it is a PipelineError, or "" otherwise.
func CodeOf(err error) string {
	if pe, ok := AsPipelineError(err); ok {
		return pe.Code
	}
	return ""
}

// IsFatal reports whether an error should abort the whole batch rather than
// a single row. Only input, output, and config errors are fatal; asset,
// render, and row errors degrade the affected row and the batch continues.
func IsFatal(err error) bool {
	pe, ok := AsPipelineError(err)
	if !ok {
		return false
	}
	switch pe.Category {
	case CategoryInput, CategoryOutput, CategoryConfig:
		return true
	}
	return false
}

// Display renders the error with context and suggestions for terminal output.
func (e *PipelineError) Display() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.Cause)
	}
	for k, v := range e.Context {
		fmt.Fprintf(&b, "\n  %s: %s", k, v)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(&b, "\n  hint: %s", s)
	}
	return b.String()
}
