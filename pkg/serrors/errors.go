package serrors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BaseError carries a stable machine-readable code alongside the
// human-readable message, so API clients can branch on Code while the
// message stays free to change.
type BaseError struct {
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	return e.Message
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// ValidationErrors maps DTO field names to the error reported for them.
type ValidationErrors map[string]error

func (v ValidationErrors) Error() string {
	first := v.First()
	if first == nil {
		return "validation failed"
	}
	return first.Error()
}

// FirstField returns the name of the field First reports on.
func (v ValidationErrors) FirstField() string {
	var firstField string
	for field := range v {
		if firstField == "" || field < firstField {
			firstField = field
		}
	}
	return firstField
}

// First returns the first field error in deterministic (field-name) order.
// Callers that report a single message pick this one.
func (v ValidationErrors) First() error {
	var firstField string
	for field := range v {
		if firstField == "" || field < firstField {
			firstField = field
		}
	}
	if firstField == "" {
		return nil
	}
	return v[firstField]
}

func NewFieldRequiredError(field string) *BaseError {
	return NewError("FIELD_REQUIRED", fmt.Sprintf("%s is required", field))
}

func NewInvalidFieldError(field, tag string) *BaseError {
	return NewError("FIELD_INVALID", fmt.Sprintf("%s is invalid (%s)", field, tag))
}

// ProcessValidatorErrors converts go-playground validator output into
// ValidationErrors keyed by struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			out[err.Field()] = NewFieldRequiredError(err.Field())
		default:
			out[err.Field()] = NewInvalidFieldError(err.Field(), err.Tag())
		}
	}
	return out
}

// Is lets errors.Is match two BaseErrors by code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.Code != "" && strings.EqualFold(t.Code, e.Code)
}
