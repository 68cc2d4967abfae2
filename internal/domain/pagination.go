package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// US Letter, in points. Y coordinates grow upwards from the bottom edge.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

const (
	FontTitle      = "Helvetica-Bold"
	FontBody       = "Courier"
	FontPageNumber = "Helvetica"

	pageNumberSize   = 9
	pageNumberMargin = 54.0
	contentIndent    = 10.0
)

// pageBreakRegex matches a "Page 2/3" marker line, which forces a new page
var pageBreakRegex = regexp.MustCompile(`(?i)^\s*Page\s+\d+\s*/\s*\d+\s*$`)

// Align anchors a text command horizontally at its X coordinate
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// DrawCommand draws one string on a page
type DrawCommand struct {
	Font  string
	Size  float64
	X     float64
	Y     float64
	Align Align
	Text  string
}

// Page is a finalized page snapshot
type Page struct {
	Number   int
	Total    int
	Commands []DrawCommand
}

// Document is the rendered form of one sheet, ready for a drawing backend
type Document struct {
	Title  string
	Width  float64
	Height float64
	Pages  []Page
}

// PaginationPhase tracks where a render is in its lifecycle
type PaginationPhase int

const (
	PhaseIdle PaginationPhase = iota
	PhaseRendering
	PhaseFinalizing
	PhaseDone
)

// PaginationState is threaded through the line fold of a single render
type PaginationState struct {
	Phase   PaginationPhase
	Cursor  float64
	Current []DrawCommand
	Pages   [][]DrawCommand
	Drawn   bool

	title  string
	layout Layout
}

// Paginate lays text out on fixed-size pages. Lines are hard-wrapped at
// MaxWidthChars characters, a "Page X/Y" marker line starts a new page,
// and every page is stamped "Page i of N" once N is known.
func Paginate(text, title string, layout Layout) Document {
	st := &PaginationState{title: title, layout: layout.Clamp()}
	st.begin()
	for _, line := range splitLines(text) {
		st.consume(line)
	}
	return st.finalize()
}

func (st *PaginationState) titleY() float64 {
	return PageHeight - float64(st.layout.TopMargin)
}

func (st *PaginationState) begin() {
	st.Phase = PhaseRendering
	st.drawHeader()
}

func (st *PaginationState) drawHeader() {
	st.Current = append(st.Current, DrawCommand{
		Font:  FontTitle,
		Size:  float64(st.layout.TitleSize),
		X:     PageWidth / 2,
		Y:     st.titleY(),
		Align: AlignCenter,
		Text:  st.title,
	})
	st.Cursor = st.titleY() - float64(st.layout.LineHeight*2)
}

// commit snapshots the current page and starts an empty one
func (st *PaginationState) commit() {
	st.Pages = append(st.Pages, st.Current)
	st.Current = nil
}

func (st *PaginationState) newPage() {
	st.commit()
	st.drawHeader()
}

func (st *PaginationState) consume(line string) {
	if pageBreakRegex.MatchString(line) {
		st.newPage()
		return
	}

	runes := []rune(line)
	width := st.layout.MaxWidthChars
	for {
		if st.Cursor < float64(st.layout.BottomMargin) {
			st.newPage()
		}

		n := min(width, len(runes))
		st.Current = append(st.Current, DrawCommand{
			Font:  FontBody,
			Size:  float64(st.layout.BodySize),
			X:     float64(st.layout.LeftMargin) + contentIndent,
			Y:     st.Cursor,
			Align: AlignLeft,
			Text:  string(runes[:n]),
		})
		st.Drawn = true
		st.Cursor -= float64(st.layout.LineHeight)

		runes = runes[n:]
		if len(runes) == 0 {
			return
		}
	}
}

// finalize commits the trailing page and replays every page with its
// "Page i of N" stamp
func (st *PaginationState) finalize() Document {
	st.Phase = PhaseFinalizing
	if st.Drawn || len(st.Pages) == 0 {
		st.commit()
	}

	total := len(st.Pages)
	doc := Document{
		Title:  st.title,
		Width:  PageWidth,
		Height: PageHeight,
		Pages:  make([]Page, 0, total),
	}
	for i, cmds := range st.Pages {
		stamped := make([]DrawCommand, len(cmds), len(cmds)+1)
		copy(stamped, cmds)
		stamped = append(stamped, DrawCommand{
			Font:  FontPageNumber,
			Size:  pageNumberSize,
			X:     PageWidth - pageNumberMargin,
			Y:     pageNumberMargin - 18,
			Align: AlignRight,
			Text:  fmt.Sprintf("Page %d of %d", i+1, total),
		})
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Total: total, Commands: stamped})
	}

	st.Pages = nil
	st.Current = nil
	st.Phase = PhaseDone
	return doc
}

// splitLines splits on \n, \r\n and \r; a trailing line break does not
// produce an extra empty line
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
