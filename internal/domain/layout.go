package domain

import (
	"strconv"
	"strings"
)

// Bound is an inclusive integer range with a default
type Bound struct {
	Default int
	Min     int
	Max     int
}

// Clamp forces n into [Min, Max]
func (b Bound) Clamp(n int) int {
	if n < b.Min {
		return b.Min
	}
	if n > b.Max {
		return b.Max
	}
	return n
}

// Parse reads raw as an integer, falling back to Default when it is blank
// or unparsable, and clamps the result
func (b Bound) Parse(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return b.Default
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return b.Default
	}
	return b.Clamp(n)
}

// Layout bounds, in points (sizes) and characters (MaxWidthChars)
var (
	LeftMarginBound    = Bound{Default: 54, Min: 20, Max: 200}
	TopMarginBound     = Bound{Default: 62, Min: 20, Max: 200}
	BottomMarginBound  = Bound{Default: 54, Min: 20, Max: 200}
	TitleSizeBound     = Bound{Default: 14, Min: 8, Max: 48}
	BodySizeBound      = Bound{Default: 10, Min: 6, Max: 24}
	LineHeightBound    = Bound{Default: 12, Min: 8, Max: 40}
	MaxWidthCharsBound = Bound{Default: 110, Min: 40, Max: 300}
)

// Layout controls how a sheet is laid out on pages
type Layout struct {
	LeftMargin    int `yaml:"left_margin" json:"left_margin"`
	TopMargin     int `yaml:"top_margin" json:"top_margin"`
	BottomMargin  int `yaml:"bottom_margin" json:"bottom_margin"`
	TitleSize     int `yaml:"title_size" json:"title_size"`
	BodySize      int `yaml:"body_size" json:"body_size"`
	LineHeight    int `yaml:"line_height" json:"line_height"`
	MaxWidthChars int `yaml:"max_width_chars" json:"max_width_chars"`
}

// DefaultLayout returns the layout used when nothing is configured
func DefaultLayout() Layout {
	return Layout{
		LeftMargin:    LeftMarginBound.Default,
		TopMargin:     TopMarginBound.Default,
		BottomMargin:  BottomMarginBound.Default,
		TitleSize:     TitleSizeBound.Default,
		BodySize:      BodySizeBound.Default,
		LineHeight:    LineHeightBound.Default,
		MaxWidthChars: MaxWidthCharsBound.Default,
	}
}

// Clamp returns a copy with every field forced into its bound
func (l Layout) Clamp() Layout {
	return Layout{
		LeftMargin:    LeftMarginBound.Clamp(l.LeftMargin),
		TopMargin:     TopMarginBound.Clamp(l.TopMargin),
		BottomMargin:  BottomMarginBound.Clamp(l.BottomMargin),
		TitleSize:     TitleSizeBound.Clamp(l.TitleSize),
		BodySize:      BodySizeBound.Clamp(l.BodySize),
		LineHeight:    LineHeightBound.Clamp(l.LineHeight),
		MaxWidthChars: MaxWidthCharsBound.Clamp(l.MaxWidthChars),
	}
}
