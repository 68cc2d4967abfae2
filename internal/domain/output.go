package domain

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	ExtText = "txt"
	ExtPDF  = "pdf"
)

// SupportedExtensions are the artifact formats the outputs directory holds
var SupportedExtensions = []string{ExtText, ExtPDF}

// extensionOrder sorts siblings inside a group: pdf first, then txt
var extensionOrder = map[string]int{ExtPDF: 0, ExtText: 1}

// OutputFile is one artifact in the outputs directory
type OutputFile struct {
	Name    string    `json:"name"`
	Ext     string    `json:"ext"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
}

// Stem returns the file name without its extension
func (f OutputFile) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// OutputGroup clusters sibling artifacts that share a group key
type OutputGroup struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	ModTime time.Time    `json:"mtime"`
	Files   []OutputFile `json:"files"`
}

// FileWithExt returns the first file in the group with the given extension
func (g OutputGroup) FileWithExt(ext string) (OutputFile, bool) {
	for _, f := range g.Files {
		if f.Ext == ext {
			return f, true
		}
	}
	return OutputFile{}, false
}

// OutputExtension returns the lowercased extension of name without the dot
func OutputExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// IsSupportedOutput reports whether name carries a supported extension
func IsSupportedOutput(name string) bool {
	ext := OutputExtension(name)
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// GroupOutputs keeps the limit most recent files and clusters them by the
// group key of their stem. Groups are ordered newest first; the label comes
// from the newest file of each group.
func GroupOutputs(files []OutputFile, limit int) []OutputGroup {
	sorted := make([]OutputFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ModTime.After(sorted[j].ModTime)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	var groups []*OutputGroup
	byKey := make(map[string]*OutputGroup)
	for _, f := range sorted {
		if !IsSupportedOutput(f.Name) {
			continue
		}
		desc := ParseStem(f.Stem())
		g, ok := byKey[desc.GroupKey]
		if !ok {
			g = &OutputGroup{
				Key:     desc.GroupKey,
				Label:   desc.Label,
				ModTime: f.ModTime,
			}
			byKey[desc.GroupKey] = g
			groups = append(groups, g)
		}
		if f.ModTime.After(g.ModTime) {
			g.ModTime = f.ModTime
		}
		g.Files = append(g.Files, f)
	}

	result := make([]OutputGroup, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Files, func(i, j int) bool {
			oi, oj := extRank(g.Files[i].Ext), extRank(g.Files[j].Ext)
			if oi != oj {
				return oi < oj
			}
			return g.Files[i].Name < g.Files[j].Name
		})
		result = append(result, *g)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ModTime.After(result[j].ModTime)
	})
	return result
}

// FindGroup returns the group with the given key
func FindGroup(groups []OutputGroup, key string) (OutputGroup, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return OutputGroup{}, false
}

func extRank(ext string) int {
	if r, ok := extensionOrder[ext]; ok {
		return r
	}
	return 99
}
