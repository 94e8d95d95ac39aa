package germinal

import (
	"testing"
)

type recordingSink struct {
	fonts []Font
}

func (s *recordingSink) ApplyFont(f Font) {
	s.fonts = append(s.fonts, f)
}

func (s *recordingSink) last() Font {
	return s.fonts[len(s.fonts)-1]
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		desc   string
		family string
		styles int
		size   float64
		bold   bool
	}{
		{"Monospace 12", "Monospace", 0, 12, false},
		{"DejaVu Sans Mono Bold 11", "DejaVu Sans Mono", 1, 11, true},
		{"Terminus", "Terminus", 0, DefaultFontSize, false},
		{"", "Monospace", 0, DefaultFontSize, false},
		{"Sans Bold Italic 10.5", "Sans", 2, 10.5, true},
		{"Bold 9", "Bold", 0, 9, false},
		{"Iosevka 14px", "Iosevka", 0, 14, false},
		{"Monospace, 11", "Monospace", 0, 11, false},
		{"Menlo,Monaco 13", "Menlo,Monaco", 0, 13, false},
	}

	for _, tt := range tests {
		f := ParseFont(tt.desc)
		if f.Family != tt.family || len(f.Styles) != tt.styles || f.Size != tt.size || f.IsBold() != tt.bold {
			t.Errorf("ParseFont(%q) = %+v, want family=%q styles=%d size=%v bold=%v",
				tt.desc, f, tt.family, tt.styles, tt.size, tt.bold)
		}
	}
}

func TestFontString(t *testing.T) {
	f := ParseFont("DejaVu Sans Mono Bold 10.5")
	if got := f.String(); got != "DejaVu Sans Mono Bold 10.5" {
		t.Errorf("String() = %q", got)
	}
	if got := f.Points(); got != 11 {
		t.Errorf("Points() = %d, want 11", got)
	}
}

func TestZoomRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	z := NewFontZoom(sink)
	z.UpdateFont("Monospace 10")

	z.Zoom()
	if z.Size() != 11 {
		t.Fatalf("after Zoom size = %v, want 11", z.Size())
	}
	z.Dezoom()
	if z.Size() != 10 {
		t.Errorf("after Zoom+Dezoom size = %v, want 10", z.Size())
	}
	if sink.last().Family != "Monospace" {
		t.Errorf("applied family = %q, want Monospace", sink.last().Family)
	}
}

func TestZoomResetReturnsToDefault(t *testing.T) {
	sink := &recordingSink{}
	z := NewFontZoom(sink)
	z.UpdateFont("Monospace 10")

	for i := 0; i < 7; i++ {
		z.Zoom()
	}
	z.Dezoom()
	z.Reset()
	if z.Size() != 10 {
		t.Errorf("after Reset size = %v, want 10", z.Size())
	}

	for i := 0; i < 20; i++ {
		z.Dezoom()
	}
	z.Reset()
	if z.Size() != 10 || sink.last().Size != 10 {
		t.Errorf("after Reset size = %v (applied %v), want 10", z.Size(), sink.last().Size)
	}
}

func TestZoomClamps(t *testing.T) {
	sink := &recordingSink{}
	z := NewFontZoom(sink)

	z.UpdateFont("Monospace 5")
	z.Dezoom()
	z.Dezoom()
	z.Dezoom()
	if z.Size() != MinFontSize {
		t.Errorf("size = %v, want %v", z.Size(), MinFontSize)
	}

	z.UpdateFont("Monospace 143.5")
	z.Zoom()
	z.Zoom()
	if z.Size() != MaxFontSize {
		t.Errorf("size = %v, want %v", z.Size(), MaxFontSize)
	}

	z.UpdateFont("Monospace 500")
	if z.Size() != MaxFontSize || z.DefaultSize() != MaxFontSize {
		t.Errorf("oversized font not clamped: size=%v default=%v", z.Size(), z.DefaultSize())
	}

	for _, f := range sink.fonts {
		if f.Size < MinFontSize || f.Size > MaxFontSize {
			t.Errorf("applied unclamped size %v", f.Size)
		}
	}
}

func TestZoomFontChangeCapturesDefault(t *testing.T) {
	z := NewFontZoom(&recordingSink{})
	z.UpdateFont("Monospace 10")
	z.Zoom()
	z.Zoom()

	z.UpdateFont("Terminus 16")
	z.Dezoom()
	z.Reset()
	if z.Size() != 16 || z.Font().Family != "Terminus" {
		t.Errorf("after font change and Reset = %v, want Terminus 16", z.Font())
	}

	z.Zoom()
	z.CaptureDefault()
	z.Dezoom()
	z.Reset()
	if z.Size() != 17 {
		t.Errorf("Reset after CaptureDefault = %v, want 17", z.Size())
	}
}
