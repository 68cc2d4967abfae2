package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// GenerateResult describes the artifacts written for one sheet
type GenerateResult struct {
	Text     string
	Title    string
	Amount   domain.TransposeAmount
	BaseStem string
	Stem     string
	Files    []string
	// Renamed is set when the base stem was taken and a suffix was added
	Renamed bool
	Message string
}

// TextName returns the name of the written text artifact
func (r *GenerateResult) TextName() string {
	return r.Stem + "." + domain.ExtText
}

// PDFName returns the name of the PDF artifact, or "" when none was written
func (r *GenerateResult) PDFName() string {
	name := r.Stem + "." + domain.ExtPDF
	for _, f := range r.Files {
		if f == name {
			return name
		}
	}
	return ""
}

// GenerateCommand transposes a sheet and writes it to the outputs directory
// as {stem}.txt and, when PDF is set, {stem}.pdf. Both files share one stem.
type GenerateCommand struct {
	repo     ports.OutputRepository
	renderer ports.DocumentRenderer

	Text          string
	Title         string
	Amount        int
	PDF           bool
	Conflict      domain.ConflictMode
	Layout        domain.Layout
	MaxTextLength int
}

// NewGenerateCommand creates a new GenerateCommand with the default layout
// and suffix conflict handling
func NewGenerateCommand(repo ports.OutputRepository, renderer ports.DocumentRenderer, text, title string, amount int) *GenerateCommand {
	return &GenerateCommand{
		repo:     repo,
		renderer: renderer,
		Text:     text,
		Title:    title,
		Amount:   amount,
		PDF:      renderer != nil,
		Conflict: domain.ConflictSuffix,
		Layout:   domain.DefaultLayout(),
	}
}

// Validate checks if the generate operation is valid
func (c *GenerateCommand) Validate() error {
	if _, err := application.ValidateAmount("amount", c.Amount); err != nil {
		return err
	}
	if err := application.ValidateRequired("text", c.Text); err != nil {
		return err
	}
	if err := application.ValidateMaxLength("text", c.Text, c.MaxTextLength); err != nil {
		return err
	}
	if c.PDF && c.renderer == nil {
		return errors.New("pdf output requested but no renderer is configured")
	}
	return nil
}

func (c *GenerateCommand) title() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return application.DefaultTitle
}

func (c *GenerateCommand) extensions() []string {
	if c.PDF {
		return []string{domain.ExtText, domain.ExtPDF}
	}
	return []string{domain.ExtText}
}

// Execute runs the generate command. The PDF is rendered into memory before
// any file is written.
func (c *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	amount := domain.TransposeAmount(c.Amount)
	title := c.title()
	transposed := domain.TransposeText(c.Text, amount)

	var pdf bytes.Buffer
	if c.PDF {
		doc := domain.Paginate(transposed, title, c.Layout)
		if err := c.renderer.Render(doc, &pdf); err != nil {
			return nil, fmt.Errorf("failed to render pdf: %w", err)
		}
	}

	names, err := c.repo.Names()
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}

	base := domain.BuildStem(title, amount)
	stem := domain.ResolveStem(names, base, c.extensions(), c.Conflict)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Text:     transposed,
		Title:    title,
		Amount:   amount,
		BaseStem: base,
		Stem:     stem,
		Renamed:  stem != base,
	}

	txtName := stem + "." + domain.ExtText
	if err := c.repo.Write(txtName, []byte(transposed)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", txtName, err)
	}
	result.Files = append(result.Files, txtName)

	if c.PDF {
		pdfName := stem + "." + domain.ExtPDF
		if err := c.repo.Write(pdfName, pdf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", pdfName, err)
		}
		result.Files = append(result.Files, pdfName)
	}

	if result.Renamed {
		result.Message = fmt.Sprintf("Existing file detected. Saved as %s.*", stem)
	} else {
		result.Message = fmt.Sprintf("Saved %s", strings.Join(result.Files, ", "))
	}
	return result, nil
}
