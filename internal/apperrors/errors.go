package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnbalanced indicates that a journal entry's debits and credits differ.
var ErrUnbalanced = errors.New("journal entry is unbalanced")

// ErrConflict indicates that a write collided with existing state (e.g. a duplicate entry number).
var ErrConflict = errors.New("resource conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = ErrConflict

// ErrForbidden indicates the caller has no access to the company.
var ErrForbidden = errors.New("no access to this company")

// ErrUnauthorized indicates the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is returned instead of leaking infrastructure detail.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure failure with an HTTP-ish code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level problems. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field problem.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field problem was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldErrors extracts field problems from err, if it carries any.
func FieldErrors(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
