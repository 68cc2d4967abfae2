package commands

import (
	"context"
	"sort"

	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// DefaultListLimit caps listings when no limit is given
const DefaultListLimit = 200

// ListOutputsResult contains the most recent artifacts and their groups
type ListOutputsResult struct {
	Files  []domain.OutputFile
	Groups []domain.OutputGroup
}

// Group returns the group with key, or the most recent group when key is
// empty or unknown
func (r *ListOutputsResult) Group(key string) (domain.OutputGroup, bool) {
	if g, ok := domain.FindGroup(r.Groups, key); ok {
		return g, true
	}
	if len(r.Groups) == 0 {
		return domain.OutputGroup{}, false
	}
	return r.Groups[0], true
}

// ListOutputsCommand lists artifacts newest first
type ListOutputsCommand struct {
	repo  ports.OutputRepository
	Limit int
}

// NewListOutputsCommand creates a new ListOutputsCommand
func NewListOutputsCommand(repo ports.OutputRepository, limit int) *ListOutputsCommand {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return &ListOutputsCommand{
		repo:  repo,
		Limit: limit,
	}
}

// Execute runs the list outputs command
func (c *ListOutputsCommand) Execute(ctx context.Context) (*ListOutputsResult, error) {
	files, err := c.repo.List()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	if len(files) > c.Limit {
		files = files[:c.Limit]
	}

	return &ListOutputsResult{
		Files:  files,
		Groups: domain.GroupOutputs(files, c.Limit),
	}, nil
}
