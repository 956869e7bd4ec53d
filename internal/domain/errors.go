package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain Const errors
var (
	ErrNotConfigured = errors.New("messaging provider is not configured")
	ErrInvalidInput  = errors.New("invalid input")
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidInput
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Errors[0].Error())
}

func (e ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Fields returns the names of the offending fields in report order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		fields = append(fields, v.Field)
	}
	return fields
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ProviderError is a failure reported by the remote messaging API itself,
// as opposed to a transport failure reaching it.
type ProviderError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("provider error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

func NewProviderError(statusCode, code int, message string) ProviderError {
	return ProviderError{
		StatusCode: statusCode,
		Code:       code,
		Message:    strings.TrimSpace(message),
	}
}
