package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ChordKind tags the shape of a recognized chord token
type ChordKind int

const (
	ChordNoteOnly   ChordKind = iota // C, F#
	ChordWithSuffix                  // Am7, Csus4, Dmaj7b9
	ChordSlash                       // D/F#, Am7/G
)

func (k ChordKind) String() string {
	switch k {
	case ChordNoteOnly:
		return "note"
	case ChordWithSuffix:
		return "chord"
	case ChordSlash:
		return "slash"
	default:
		return "unknown"
	}
}

// ChordToken is a chord-shaped substring found while scanning a sheet.
// Start and End are byte offsets into the scanned text.
type ChordToken struct {
	Kind   ChordKind
	Root   string
	Suffix string
	Bass   string
	Start  int
	End    int
}

// Text reassembles the token as it appeared in the source
func (t ChordToken) Text() string {
	if t.Kind == ChordSlash {
		return t.Root + t.Suffix + "/" + t.Bass
	}
	return t.Root + t.Suffix
}

// Transpose re-spells the root (and bass) and keeps the suffix untouched
func (t ChordToken) Transpose(amount TransposeAmount) string {
	out := transposeNote(t.Root, amount) + t.Suffix
	if t.Kind == ChordSlash {
		out += "/" + transposeNote(t.Bass, amount)
	}
	return out
}

// transposeNote leaves unresolvable spellings (Cb, E#, ...) verbatim
func transposeNote(note string, amount TransposeAmount) string {
	pc, ok := ResolvePitch(note)
	if !ok {
		return note
	}
	return pc.Transpose(amount).Spell()
}

// qualities is ordered as the matcher tries them; "m" precedes "maj"/"min"
// and the boundary check backtracks into the longer forms.
var qualities = []string{"m", "maj", "min", "dim", "aug", "sus", "add", "M"}

// extensionMarkers each take one or more digits (add9, no3, sus4, b9, #11)
var extensionMarkers = []string{"add", "no", "sus", "b", "#"}

// ScanChords returns every chord token in text, left to right
func ScanChords(text string) []ChordToken {
	var tokens []ChordToken
	lx := chordLexer{src: text}
	for i := 0; i < len(text); {
		if tok, ok := lx.matchAt(i); ok {
			tokens = append(tokens, tok)
			i = tok.End
			continue
		}
		i++
	}
	return tokens
}

// TransposeText shifts every chord root in text by amount semitones.
// Everything outside chord tokens is copied through byte for byte.
func TransposeText(text string, amount TransposeAmount) string {
	tokens := ScanChords(text)
	if len(tokens) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		b.WriteString(text[last:tok.Start])
		b.WriteString(tok.Transpose(amount))
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// chordLexer matches the chord grammar with explicit backtracking:
//
//	note quality? digits* (marker digits+)* ("/" note)?
//
// where note is [A-G][b#]?. Each step hands candidate end positions to a
// continuation in preference order; the first candidate that reaches a valid
// end boundary wins.
type chordLexer struct {
	src string
}

func (lx *chordLexer) matchAt(start int) (ChordToken, bool) {
	if !isNoteLetter(lx.byteAt(start)) || !lx.startBounded(start) {
		return ChordToken{}, false
	}

	var tok ChordToken
	ok := lx.note(start, func(rootEnd int) bool {
		return lx.quality(rootEnd, func(p int) bool {
			return lx.digits(p, 0, func(p int) bool {
				return lx.extensions(p, func(suffixEnd int) bool {
					return lx.bass(suffixEnd, func(end int) bool {
						if !lx.endBounded(end) {
							return false
						}
						tok = lx.token(start, rootEnd, suffixEnd, end)
						return true
					})
				})
			})
		})
	})
	return tok, ok
}

func (lx *chordLexer) token(start, rootEnd, suffixEnd, end int) ChordToken {
	tok := ChordToken{
		Root:   lx.src[start:rootEnd],
		Suffix: lx.src[rootEnd:suffixEnd],
		Start:  start,
		End:    end,
	}
	switch {
	case end > suffixEnd:
		tok.Kind = ChordSlash
		tok.Bass = lx.src[suffixEnd+1 : end]
	case tok.Suffix != "":
		tok.Kind = ChordWithSuffix
	default:
		tok.Kind = ChordNoteOnly
	}
	return tok
}

// note matches [A-G][b#]?, preferring the accidental
func (lx *chordLexer) note(p int, k func(int) bool) bool {
	if !isNoteLetter(lx.byteAt(p)) {
		return false
	}
	if c := lx.byteAt(p + 1); c == 'b' || c == '#' {
		if k(p + 2) {
			return true
		}
	}
	return k(p + 1)
}

func (lx *chordLexer) quality(p int, k func(int) bool) bool {
	for _, q := range qualities {
		if strings.HasPrefix(lx.src[p:], q) && k(p+len(q)) {
			return true
		}
	}
	return k(p)
}

// digits matches a run of no fewer than least digits, longest first
func (lx *chordLexer) digits(p, least int, k func(int) bool) bool {
	n := 0
	for isDigit(lx.byteAt(p + n)) {
		n++
	}
	for ; n >= least; n-- {
		if k(p + n) {
			return true
		}
	}
	return false
}

// extensions matches zero or more marker+digits groups, most groups first
func (lx *chordLexer) extensions(p int, k func(int) bool) bool {
	for _, m := range extensionMarkers {
		if !strings.HasPrefix(lx.src[p:], m) {
			continue
		}
		next := p + len(m)
		if lx.digits(next, 1, func(q int) bool { return lx.extensions(q, k) }) {
			return true
		}
	}
	return k(p)
}

func (lx *chordLexer) bass(p int, k func(int) bool) bool {
	if lx.byteAt(p) == '/' && lx.note(p+1, k) {
		return true
	}
	return k(p)
}

func (lx *chordLexer) startBounded(p int) bool {
	if p == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(lx.src[:p])
	return !isWordRune(r)
}

// endBounded rejects a match that would split a word: a token may not end
// on a word character that is immediately followed by another one. A token
// ending in '#' is always bounded.
func (lx *chordLexer) endBounded(p int) bool {
	if p >= len(lx.src) {
		return true
	}
	if !isWordRune(rune(lx.src[p-1])) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(lx.src[p:])
	return !isWordRune(r)
}

func (lx *chordLexer) byteAt(p int) byte {
	if p < 0 || p >= len(lx.src) {
		return 0
	}
	return lx.src[p]
}

func isNoteLetter(c byte) bool { return c >= 'A' && c <= 'G' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
