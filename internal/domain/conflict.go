package domain

import (
	"fmt"
	"strings"
)

// ConflictMode decides what happens when an output stem is already taken
type ConflictMode int

const (
	// ConflictSuffix probes stem-2, stem-3, ... until every extension is free
	ConflictSuffix ConflictMode = iota
	// ConflictOverwrite reuses the base stem and replaces existing files
	ConflictOverwrite
)

func (m ConflictMode) String() string {
	if m == ConflictOverwrite {
		return "overwrite"
	}
	return "suffix"
}

// ParseConflictMode accepts "suffix" or "overwrite" (case-insensitive, trimmed).
// Anything else falls back to ConflictSuffix.
func ParseConflictMode(s string) ConflictMode {
	if strings.EqualFold(strings.TrimSpace(s), "overwrite") {
		return ConflictOverwrite
	}
	return ConflictSuffix
}

// NameSet is a set of file names present in an output directory
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from a list of file names
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// ResolveStem picks the stem shared by every extension of one artifact.
// In suffix mode the result never collides with an existing
// "{stem}.{ext}" for any of the given extensions.
func ResolveStem(existing NameSet, baseStem string, extensions []string, mode ConflictMode) string {
	if mode == ConflictOverwrite {
		return baseStem
	}

	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, NormalizeExtension(ext))
	}

	taken := func(stem string) bool {
		for _, ext := range exts {
			if existing.Has(stem + "." + ext) {
				return true
			}
		}
		return false
	}

	if !taken(baseStem) {
		return baseStem
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseStem, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// NormalizeExtension strips one leading dot
func NormalizeExtension(ext string) string {
	return strings.TrimPrefix(ext, ".")
}
