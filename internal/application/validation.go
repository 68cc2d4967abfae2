package application

import (
	"fmt"
	"strings"

	"capotokeys/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "groupKey" -> "group key")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"text":     "text",
		"name":     "file name",
		"groupKey": "group key",
		"stem":     "stem",
		"amount":   "transpose amount",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateAmount checks that n is a transpose amount in [0, 11]
func ValidateAmount(fieldName string, n int) (domain.TransposeAmount, error) {
	amount, err := domain.ValidateTransposeAmount(n)
	if err != nil {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("must be a number from %d to %d, got %d", domain.MinTransposeAmount, domain.MaxTransposeAmount, n),
		}
	}
	return amount, nil
}

// ValidateMaxLength rejects values longer than limit bytes. A limit of zero
// or less disables the check.
func ValidateMaxLength(fieldName, value string, limit int) error {
	if limit > 0 && len(value) > limit {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s exceeds %d characters", formatFieldName(fieldName), limit),
		}
	}
	return nil
}
