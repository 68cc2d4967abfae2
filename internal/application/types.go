package application

import "capotokeys/internal/domain"

// Re-export domain types for use by adapters
type (
	TransposeAmount = domain.TransposeAmount
	ConflictMode    = domain.ConflictMode
	StemDescriptor  = domain.StemDescriptor
	OutputFile      = domain.OutputFile
	OutputGroup     = domain.OutputGroup
	Layout          = domain.Layout
)

const (
	ConflictSuffix    = domain.ConflictSuffix
	ConflictOverwrite = domain.ConflictOverwrite
)

// DefaultTitle is used when a sheet is submitted without a title
const DefaultTitle = "Chord Sheet"

// ParseStem recovers the descriptor of an output stem
func ParseStem(stem string) StemDescriptor {
	return domain.ParseStem(stem)
}

// BuildStem returns the canonical stem for a title and transpose amount
func BuildStem(title string, amount TransposeAmount) string {
	return domain.BuildStem(title, amount)
}

// ParseConflictMode maps "suffix" or "overwrite" to a ConflictMode
func ParseConflictMode(s string) ConflictMode {
	return domain.ParseConflictMode(s)
}
