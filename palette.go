package germinal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/phroun/purfecterm"
)

// ErrInvalidPalette is returned when the stored palette has a length the
// terminal cannot use, even after resetting it.
var ErrInvalidPalette = errors.New("invalid palette size")

// Palette is an ordered list of colors in ANSI index order
type Palette []colorful.Color

// ValidPaletteSize reports whether n colors form a usable palette
func ValidPaletteSize(n int) bool {
	return n == 0 || n == 8 || n == 16 || n == 24 || (n >= 25 && n <= 255)
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#bebebe",
	"grey":    "#bebebe",
	"orange":  "#ffa500",
	"purple":  "#a020f0",
}

// ParseColor parses "#rgb", "#rrggbb", "#rrrrggggbbbb", "rgb(r,g,b)" and a
// few basic color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}

	switch {
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return colorful.Color{}, fmt.Errorf("color %q: want three components", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
			}
			rgb[i] = uint8(v)
		}
		return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, nil

	case len(s) == 13 && s[0] == '#':
		// 16 bits per channel; keep the high byte
		s = "#" + s[1:3] + s[5:7] + s[9:11]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// LoadPalette reads the palette setting. An invalid size resets the setting
// to its default and reads it again; if that is still invalid the empty
// palette is returned with ErrInvalidPalette. Unparsable entries fall back
// to the widget's built-in color for that index.
func LoadPalette(s *Store) (Palette, error) {
	colors := s.Strings(PaletteKey)
	if !ValidPaletteSize(len(colors)) {
		s.log.Warn("resetting palette with invalid size", "size", len(colors))
		if err := s.Reset(PaletteKey); err != nil {
			s.log.Warn("could not reset palette", "err", err)
		}
		colors = s.Strings(PaletteKey)
		if !ValidPaletteSize(len(colors)) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidPalette, len(colors))
		}
	}

	p := make(Palette, len(colors))
	for i, str := range colors {
		c, err := ParseColor(str)
		if err != nil {
			s.log.Warn("bad palette entry", "index", i, "err", err)
			c = fromTerm(fallbackColor(i))
		}
		p[i] = c
	}
	return p, nil
}

func fallbackColor(i int) purfecterm.Color {
	if i < len(purfecterm.ANSIColors) {
		return purfecterm.ANSIColors[i]
	}
	return purfecterm.Get256Color(i)
}

func fromTerm(c purfecterm.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTerm(c colorful.Color) purfecterm.Color {
	r, g, b := c.Clamped().RGB255()
	return purfecterm.TrueColor(r, g, b)
}

// ANSI returns the 16 ANSI colors the palette defines, or nil for the empty
// palette. Eight colors get their bright variants blended toward white;
// entries past 16 are not addressable through the scheme.
func (p Palette) ANSI() []purfecterm.Color {
	if len(p) == 0 {
		return nil
	}

	out := make([]purfecterm.Color, 16)
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := range out {
		switch {
		case i < len(p):
			out[i] = toTerm(p[i])
		case len(p) == 8:
			out[i] = toTerm(p[i-8].BlendLab(white, 0.3))
		default:
			out[i] = fallbackColor(i)
		}
	}
	return out
}

// ColorScheme builds the widget color scheme from the foreground and
// background settings and a palette. Both screen modes use the same colors.
func ColorScheme(fore, back string, p Palette) (purfecterm.ColorScheme, error) {
	scheme := purfecterm.DefaultColorScheme()

	fg, err := ParseColor(fore)
	if err != nil {
		return scheme, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColor(back)
	if err != nil {
		return scheme, fmt.Errorf("background: %w", err)
	}

	ansi := p.ANSI()
	if ansi == nil {
		ansi = purfecterm.ANSIColors
	}

	scheme.DarkForeground = toTerm(fg)
	scheme.DarkBackground = toTerm(bg)
	scheme.DarkPalette = ansi
	scheme.LightForeground = scheme.DarkForeground
	scheme.LightBackground = scheme.DarkBackground
	scheme.LightPalette = ansi
	scheme.Cursor = toTerm(fg)
	scheme.Selection = toTerm(bg.BlendLab(fg, 0.3))
	return scheme, nil
}
