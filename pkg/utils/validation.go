package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "numeric":
		return "Must contain digits only"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(splitOneOfParam(err.Param()), ", "))
	case "uuid":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// splitOneOfParam splits a oneof tag's params, keeping single-quoted
// multi-word options (e.g. 'In Progress') intact.
func splitOneOfParam(param string) []string {
	var options []string
	fields := strings.Fields(param)
	for i := 0; i < len(fields); i++ {
		option := fields[i]
		if strings.HasPrefix(option, "'") && !strings.HasSuffix(option, "'") {
			for i+1 < len(fields) {
				i++
				option += " " + fields[i]
				if strings.HasSuffix(fields[i], "'") {
					break
				}
			}
		}
		options = append(options, strings.Trim(option, "'"))
	}
	return options
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
