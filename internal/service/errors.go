// Package service provides business logic for the application.
package service

import (
	"errors"
	"strings"
)

// Service errors.
var (
	ErrMealNotFound  = errors.New("meal not found")
	ErrInvalidMealID = errors.New("invalid meal id")
	ErrEmailExists   = errors.New("email already exists")
	ErrValidation    = errors.New("validation failed")
)

// FieldError describes one failed constraint on an input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	if f.Param != "" {
		return f.Field + " failed " + f.Rule + "=" + f.Param
	}
	return f.Field + " failed " + f.Rule
}

// ValidationError lists every field that failed validation.
// errors.Is(err, ErrValidation) holds for any *ValidationError.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match on ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldNames returns the offending field names in order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return names
}
