package domain

// PitchClass is a semitone index anchored at C=0 (0..11)
type PitchClass int

// SpellingChart maps each pitch class to its display name
type SpellingChart [12]string

var (
	// SharpChart spells accidentals with sharps
	SharpChart = SpellingChart{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

	// FlatChart spells accidentals with flats
	FlatChart = SpellingChart{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	// SmartChart is the display spelling used for every transposed root
	SmartChart = SpellingChart{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// index returns the position of spelling in the chart, or -1
func (c SpellingChart) index(spelling string) int {
	for i, name := range c {
		if name == spelling {
			return i
		}
	}
	return -1
}

// ResolvePitch looks spelling up in the sharp chart, then the flat chart.
// The boolean is false when spelling is not a note name in either chart.
func ResolvePitch(spelling string) (PitchClass, bool) {
	if i := SharpChart.index(spelling); i >= 0 {
		return PitchClass(i), true
	}
	if i := FlatChart.index(spelling); i >= 0 {
		return PitchClass(i), true
	}
	return 0, false
}

// Spell returns the smart-chart name for a pitch class
func (p PitchClass) Spell() string {
	return SmartChart[p.normalize()]
}

// Transpose shifts the pitch class up by amount semitones, modulo 12
func (p PitchClass) Transpose(amount TransposeAmount) PitchClass {
	return (p + PitchClass(amount)).normalize()
}

func (p PitchClass) normalize() PitchClass {
	return ((p % 12) + 12) % 12
}
