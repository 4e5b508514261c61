package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// JSONSchema is the declarative shape of an activity payload. The registry
// publishes one per activity; ValidateInput checks a variables map against it.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput checks the variables map against the schema and collects every
// violation instead of stopping at the first one.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	for _, required := range schema.Required {
		if _, exists := input[required]; !exists {
			errors = append(errors, ValidationError{
				Field:   required,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for name, value := range input {
		prop, exists := schema.Properties[name]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   name,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}
		errors = append(errors, validateField(name, value, prop)...)
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateField(name string, value interface{}, prop Property) []ValidationError {
	if err := checkType(value, prop.Type); err != nil {
		// Nothing below is meaningful on the wrong type.
		return []ValidationError{{Field: name, Message: err.Error(), Code: "INVALID_TYPE"}}
	}

	errors := []ValidationError{}

	if str, ok := value.(string); ok {
		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, str)
			if err != nil || !matched {
				errors = append(errors, ValidationError{
					Field:   name,
					Message: fmt.Sprintf("value must match pattern %s", *prop.Pattern),
					Code:    "PATTERN_MISMATCH",
				})
			}
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, str) {
			errors = append(errors, ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value must be one of %v", prop.Enum),
				Code:    "INVALID_ENUM_VALUE",
			})
		}
	}

	if num, ok := value.(float64); ok {
		if prop.Minimum != nil && num < *prop.Minimum {
			errors = append(errors, ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value must be >= %v", *prop.Minimum),
				Code:    "MINIMUM_VIOLATION",
			})
		}
		if prop.Maximum != nil && num > *prop.Maximum {
			errors = append(errors, ValidationError{
				Field:   name,
				Message: fmt.Sprintf("value must be <= %v", *prop.Maximum),
				Code:    "MAXIMUM_VIOLATION",
			})
		}
	}

	if items, ok := value.([]interface{}); ok && prop.Items != nil {
		for i, item := range items {
			errors = append(errors, validateField(fmt.Sprintf("%s[%d]", name, i), item, *prop.Items)...)
		}
	}

	if nested, ok := value.(map[string]interface{}); ok && prop.Properties != nil {
		nestedResult := ValidateInput(nested, JSONSchema{
			Type:                 "object",
			Properties:           prop.Properties,
			Required:             prop.Required,
			AdditionalProperties: true,
		})
		for _, nestedErr := range nestedResult.Errors {
			errors = append(errors, ValidationError{
				Field:   name + "." + nestedErr.Field,
				Message: nestedErr.Message,
				Code:    nestedErr.Code,
			})
		}
	}

	return errors
}

func checkType(value interface{}, expected string) error {
	ok := true
	switch expected {
	case "string":
		_, ok = value.(string)
	case "number":
		ok = isNumeric(value)
	case "integer":
		switch value.(type) {
		case int, int32, int64:
		default:
			ok = false
		}
	case "boolean":
		_, ok = value.(bool)
	case "object":
		_, ok = value.(map[string]interface{})
	case "array":
		_, ok = value.([]interface{})
	}
	if !ok {
		return fmt.Errorf("expected %s, got %T", expected, value)
	}
	return nil
}

// isNumeric accepts the integer types alongside float64: numbers built in Go
// code arrive as ints, numbers decoded from JSON as float64.
func isNumeric(value interface{}) bool {
	switch value.(type) {
	case float64, int, int32, int64:
		return true
	}
	return false
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

var activityIDPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)

// ValidateActivityNaming enforces the domain.subdomain.action convention for
// registry activity IDs (e.g. credit.analysis.extract).
func ValidateActivityNaming(activityID string) error {
	if !activityIDPattern.MatchString(activityID) {
		return fmt.Errorf("activity ID must follow format: domain.subdomain.action (e.g., credit.analysis.extract)")
	}
	return nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors reports whether any error was recorded for the field or one of
// its children.
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			return true
		}
	}
	return false
}

// ValidatePhone accepts E.164-style numbers with optional spacing and
// punctuation. Good enough to keep garbage out of the SMS gateway.
func ValidatePhone(phone string) bool {
	phonePattern := regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	return phonePattern.MatchString(phone)
}

// ValidateEmail is a pragmatic format check, not an RFC 5322 parser.
func ValidateEmail(email string) bool {
	emailPattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailPattern.MatchString(email)
}
