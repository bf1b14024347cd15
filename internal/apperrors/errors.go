// Package apperrors defines the error taxonomy shared across handlers,
// services and repositories.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError describes a single user-correctable field failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors aggregates field failures. Validation collects every
// failing field before reporting, so callers see the full set at once.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Add appends a field failure.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, NewValidationError(field, message))
}

// HasErrors reports whether any field failed.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error joins the accumulated messages with ", ". Clients display the
// joined string verbatim.
func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, ", ")
}

// PersistenceError wraps a storage failure that aborted a transaction.
// Only the top-level message is surfaced to clients.
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError wraps err with the failing operation name.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a field-level or aggregated
// validation failure.
func IsValidation(err error) bool {
	var single *ValidationError
	var multi *ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

// IsPersistence reports whether err is a transaction-level storage failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
