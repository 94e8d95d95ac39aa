package germinal

import (
	"strconv"
	"strings"
)

// DefaultFontSize is used when a font description carries no size
const DefaultFontSize = 12.0

// Font is a parsed font description of the form "Family [Styles] [Size]",
// e.g. "DejaVu Sans Mono Bold 11".
type Font struct {
	Family string   // may be a comma-separated fallback list
	Styles []string // style, weight, stretch and variant words
	Size   float64  // points
}

// styleWords are the description words that are not part of the family name
var styleWords = map[string]bool{
	"normal": true, "regular": true, "roman": true,
	"italic": true, "oblique": true,
	"thin": true, "ultra-light": true, "extra-light": true, "light": true,
	"semi-light": true, "demi-light": true, "book": true, "medium": true,
	"semi-bold": true, "demi-bold": true, "bold": true, "ultra-bold": true,
	"extra-bold": true, "heavy": true, "black": true, "ultra-heavy": true,
	"extra-heavy": true,
	"ultra-condensed": true, "extra-condensed": true, "condensed": true,
	"semi-condensed": true, "semi-expanded": true, "expanded": true,
	"extra-expanded": true, "ultra-expanded": true,
	"small-caps": true,
}

// ParseFont parses a font description. Words are read from the end: an
// optional size, then style words, and everything left is the family.
func ParseFont(desc string) Font {
	f := Font{Size: DefaultFontSize}
	words := strings.Fields(desc)

	if n := len(words); n > 0 {
		last := strings.TrimSuffix(strings.TrimSuffix(words[n-1], "px"), ",")
		if size, err := strconv.ParseFloat(last, 64); err == nil && size > 0 {
			f.Size = size
			words = words[:n-1]
		}
	}

	i := len(words)
	for i > 1 && styleWords[strings.ToLower(words[i-1])] {
		i--
	}
	if i < len(words) {
		f.Styles = append([]string(nil), words[i:]...)
	}
	f.Family = strings.TrimSuffix(strings.Join(words[:i], " "), ",")
	if f.Family == "" {
		f.Family = "Monospace"
	}
	return f
}

// IsBold reports whether the description asks for a bold weight
func (f Font) IsBold() bool {
	for _, s := range f.Styles {
		if strings.Contains(strings.ToLower(s), "bold") {
			return true
		}
	}
	return false
}

// WithSize returns a copy of f at the given size
func (f Font) WithSize(size float64) Font {
	f.Styles = append([]string(nil), f.Styles...)
	f.Size = size
	return f
}

// Points returns the size rounded to whole points
func (f Font) Points() int {
	return int(f.Size + 0.5)
}

func (f Font) String() string {
	parts := []string{f.Family}
	parts = append(parts, f.Styles...)
	parts = append(parts, strconv.FormatFloat(f.Size, 'g', -1, 64))
	return strings.Join(parts, " ")
}
