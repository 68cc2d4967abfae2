package commands

import (
	"context"

	"capotokeys/internal/application"
	"capotokeys/internal/ports"
)

// ReadOutputResult holds an artifact's content and location
type ReadOutputResult struct {
	Name    string
	Path    string
	Content []byte
}

// ReadOutputCommand loads one artifact from the outputs directory
type ReadOutputCommand struct {
	repo ports.OutputRepository
	Name string
}

// NewReadOutputCommand creates a new ReadOutputCommand
func NewReadOutputCommand(repo ports.OutputRepository, name string) *ReadOutputCommand {
	return &ReadOutputCommand{repo: repo, Name: name}
}

// Execute runs the read command
func (c *ReadOutputCommand) Execute(ctx context.Context) (*ReadOutputResult, error) {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return nil, err
	}

	path, err := c.repo.Path(c.Name)
	if err != nil {
		return nil, err
	}
	content, err := c.repo.Read(c.Name)
	if err != nil {
		return nil, err
	}

	return &ReadOutputResult{
		Name:    c.Name,
		Path:    path,
		Content: content,
	}, nil
}
