package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPath = errors.New("invalid path")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PathError reports a file name that resolves outside the outputs directory
type PathError struct {
	Name string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path: %s", e.Name)
}

func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath
}
