package serrors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error shared by infrastructure packages.
type Base struct {
	Code    string
	Message string
	Details string
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}

func (e *Base) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

// ValidationErrors maps struct field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) First() string {
	for _, msg := range v {
		return msg
	}
	return ""
}

// FromValidator flattens go-playground validation errors into per-field
// messages. Messages are plain English; field names come from the struct.
func FromValidator(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
