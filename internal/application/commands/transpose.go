package commands

import (
	"context"
	"fmt"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
)

// TransposeResult contains the transposed sheet
type TransposeResult struct {
	Text    string
	Amount  domain.TransposeAmount
	Chords  int
	Message string
}

// TransposeCommand transposes a chord sheet without persisting anything
type TransposeCommand struct {
	Text          string
	Amount        int
	MaxTextLength int
}

// NewTransposeCommand creates a new TransposeCommand
func NewTransposeCommand(text string, amount int) *TransposeCommand {
	return &TransposeCommand{
		Text:   text,
		Amount: amount,
	}
}

// Validate checks the text and the transpose amount
func (c *TransposeCommand) Validate() error {
	if _, err := application.ValidateAmount("amount", c.Amount); err != nil {
		return err
	}
	if err := application.ValidateRequired("text", c.Text); err != nil {
		return err
	}
	return application.ValidateMaxLength("text", c.Text, c.MaxTextLength)
}

// Execute runs the transpose command
func (c *TransposeCommand) Execute(ctx context.Context) (*TransposeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	amount := domain.TransposeAmount(c.Amount)
	chords := len(domain.ScanChords(c.Text))

	return &TransposeResult{
		Text:    domain.TransposeText(c.Text, amount),
		Amount:  amount,
		Chords:  chords,
		Message: fmt.Sprintf("Transposed %d chords by %d semitones", chords, amount),
	}, nil
}
