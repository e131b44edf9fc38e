package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed field, shaped for API responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = validator.New()

// ValidateStruct runs tag validation and returns field-level errors, or nil.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrors []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldName(fe),
			Message: message(fe),
		})
	}
	return fieldErrors
}

func fieldName(fe validator.FieldError) string {
	// Strip the struct name prefix, lowercase the first letter to match JSON keys
	name := fe.StructNamespace()
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName(fe))
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), "'", ""))
	case "min":
		return fmt.Sprintf("must have at least %s element(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "unique":
		return "duplicate entries are not allowed"
	case "url":
		return "invalid URL format"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
