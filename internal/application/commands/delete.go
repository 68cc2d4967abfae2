package commands

import (
	"context"
	"fmt"
	"strings"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// DeleteOutputResult contains the result of deleting one artifact
type DeleteOutputResult struct {
	Name    string
	Message string
}

// DeleteOutputCommand deletes a single file from the outputs directory
type DeleteOutputCommand struct {
	repo ports.OutputRepository
	Name string
}

// NewDeleteOutputCommand creates a new DeleteOutputCommand
func NewDeleteOutputCommand(repo ports.OutputRepository, name string) *DeleteOutputCommand {
	return &DeleteOutputCommand{
		repo: repo,
		Name: name,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteOutputCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the delete command
func (c *DeleteOutputCommand) Execute(ctx context.Context) (*DeleteOutputResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(c.Name); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Name, err)
	}

	return &DeleteOutputResult{
		Name:    c.Name,
		Message: fmt.Sprintf("Deleted %s", c.Name),
	}, nil
}

// DeleteGroupResult contains the files removed from a group
type DeleteGroupResult struct {
	GroupKey string
	Deleted  []string
	Message  string
}

// DeleteGroupCommand deletes every artifact whose stem parses to GroupKey
type DeleteGroupCommand struct {
	repo     ports.OutputRepository
	GroupKey string
}

// NewDeleteGroupCommand creates a new DeleteGroupCommand
func NewDeleteGroupCommand(repo ports.OutputRepository, groupKey string) *DeleteGroupCommand {
	return &DeleteGroupCommand{
		repo:     repo,
		GroupKey: strings.TrimSpace(groupKey),
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteGroupCommand) Validate() error {
	return application.ValidateRequired("groupKey", c.GroupKey)
}

// Execute runs the delete group command. Files are matched over the whole
// directory, not just the most recent listing.
func (c *DeleteGroupCommand) Execute(ctx context.Context) (*DeleteGroupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	files, err := c.repo.List()
	if err != nil {
		return nil, err
	}

	result := &DeleteGroupResult{GroupKey: c.GroupKey}
	for _, f := range files {
		if domain.ParseStem(f.Stem()).GroupKey != c.GroupKey {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := c.repo.Delete(f.Name); err != nil {
			return result, fmt.Errorf("failed to delete %s: %w", f.Name, err)
		}
		result.Deleted = append(result.Deleted, f.Name)
	}

	if len(result.Deleted) == 0 {
		result.Message = "No files found for that group."
	} else {
		result.Message = fmt.Sprintf("Deleted %d files from group.", len(result.Deleted))
	}
	return result, nil
}
