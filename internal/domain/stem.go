package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSlug is used when a title has no usable characters
const DefaultSlug = "chord-sheet"

var (
	nonSlugRegex      = regexp.MustCompile(`[^a-z0-9]+`)
	legacyPrefixRegex = regexp.MustCompile(`^(\d{8}-\d{6})-(.+)$`)
	outputStemRegex   = regexp.MustCompile(`^([a-z0-9]+(?:-[a-z0-9]+)*)-capo(\d{1,2})(?:-(\d+))?$`)
)

// StemDescriptor is the parsed identity of an output file family
type StemDescriptor struct {
	GroupKey    string `json:"group_key"`
	Label       string `json:"label"`
	TitleSlug   string `json:"title_slug,omitempty"`
	Capo        *int   `json:"capo"`
	Revision    *int   `json:"revision"`
	IsLegacy    bool   `json:"is_legacy"`
	ValidSchema bool   `json:"valid_schema"`
}

// Slugify lowercases s and collapses every run of non [a-z0-9] characters
// into one hyphen, e.g. "My Song!!" -> "my-song"
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultSlug
	}
	return s
}

// BuildStem returns the canonical stem "{slug}-capo{amount}"
func BuildStem(title string, amount TransposeAmount) string {
	return fmt.Sprintf("%s-capo%d", Slugify(title), amount)
}

// ParseStem parses canonical and legacy (timestamp-prefixed) stems.
// It never fails: unknown shapes come back with ValidSchema false.
func ParseStem(stem string) StemDescriptor {
	core := stem
	legacy := false
	if m := legacyPrefixRegex.FindStringSubmatch(stem); m != nil {
		core = m[2]
		legacy = true
	}

	desc := StemDescriptor{
		GroupKey: core,
		Label:    core,
		IsLegacy: legacy,
	}

	m := outputStemRegex.FindStringSubmatch(core)
	if m == nil {
		return desc
	}

	capo, _ := strconv.Atoi(m[2])
	desc.TitleSlug = m[1]
	desc.Capo = &capo
	if m[3] != "" {
		if rev, err := strconv.Atoi(m[3]); err == nil {
			desc.Revision = &rev
		}
	}

	if !TransposeAmount(capo).Valid() {
		return desc
	}

	desc.ValidSchema = true
	desc.Label = stemLabel(desc.TitleSlug, capo, desc.Revision)
	return desc
}

// stemLabel renders "My Song (Capo 3)" or "My Song (Capo 3, Version 2)"
func stemLabel(slug string, capo int, revision *int) string {
	var words []string
	for _, part := range strings.Split(slug, "-") {
		if part == "" {
			continue
		}
		words = append(words, strings.ToUpper(part[:1])+part[1:])
	}
	title := strings.Join(words, " ")
	if title == "" {
		title = "Chord Sheet"
	}

	if revision != nil && *revision != 0 {
		return fmt.Sprintf("%s (Capo %d, Version %d)", title, capo, *revision)
	}
	return fmt.Sprintf("%s (Capo %d)", title, capo)
}
