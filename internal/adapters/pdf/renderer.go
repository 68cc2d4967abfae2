// Package pdf replays paginated documents onto PDF pages with go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"capotokeys/internal/domain"
)

// Renderer implements ports.DocumentRenderer
type Renderer struct {
	// Creator is written into the document metadata
	Creator string
	// Now stamps the creation date; nil means time.Now
	Now func() time.Time
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{Creator: "capotokeys"}
}

// Render draws every page of doc and writes the PDF to w. Domain
// coordinates have their origin at the bottom-left corner.
func (r *Renderer) Render(doc domain.Document, w io.Writer) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(r.Creator, true)
	pdf.SetCreationDate(r.now())

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, cmd := range page.Commands {
			family, style := fontFamily(cmd.Font)
			pdf.SetFont(family, style, cmd.Size)

			text := tr(cmd.Text)
			x := cmd.X
			switch cmd.Align {
			case domain.AlignCenter:
				x -= pdf.GetStringWidth(text) / 2
			case domain.AlignRight:
				x -= pdf.GetStringWidth(text)
			}
			pdf.Text(x, doc.Height-cmd.Y, text)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// fontFamily splits a PostScript-style name ("Helvetica-Bold") into an
// fpdf family and style
func fontFamily(name string) (string, string) {
	family, variant, _ := strings.Cut(name, "-")
	switch variant {
	case "Bold":
		return family, "B"
	case "Oblique", "Italic":
		return family, "I"
	case "BoldOblique", "BoldItalic":
		return family, "BI"
	}
	return family, ""
}
