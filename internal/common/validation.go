package common

import (
	"fmt"
	"strings"
)

// FieldViolation represents a single failed rule on a named field
type FieldViolation struct {
	Field   string
	Message string
}

func (e FieldViolation) Error() string {
	return fmt.Sprintf("field '%s' %s", e.Field, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	violations []FieldViolation
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		violations: make([]FieldViolation, 0),
	}
}

// Field validates a field and collects violations
func (v *Validator) Field(fieldName string, value string, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.violations = append(v.violations, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.violations) > 0
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range v.violations {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value string) *FieldViolation

// Required rejects empty or whitespace-only values.
func Required(fieldName string, value string) *FieldViolation {
	if strings.TrimSpace(value) == "" {
		return &FieldViolation{Field: fieldName, Message: "is required"}
	}
	return nil
}
