package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TransposeAmount is a semitone offset, usually the capo fret number
type TransposeAmount int

const (
	MinTransposeAmount TransposeAmount = 0
	MaxTransposeAmount TransposeAmount = 11
)

// Valid reports whether the amount lies in [0, 11]
func (a TransposeAmount) Valid() bool {
	return a >= MinTransposeAmount && a <= MaxTransposeAmount
}

// ValidateTransposeAmount rejects values outside [0, 11]. Values are never wrapped.
func ValidateTransposeAmount(n int) (TransposeAmount, error) {
	a := TransposeAmount(n)
	if !a.Valid() {
		return 0, fmt.Errorf("transpose amount %d out of range %d-%d", n, MinTransposeAmount, MaxTransposeAmount)
	}
	return a, nil
}

// ParseTransposeAmount parses a decimal string and validates its range
func ParseTransposeAmount(s string) (TransposeAmount, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid transpose amount %q", s)
	}
	return ValidateTransposeAmount(n)
}
