// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/dailydiet/dailydiet/internal/service"

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Code   string               `json:"code"`
	Fields []service.FieldError `json:"fields,omitempty"`
}
