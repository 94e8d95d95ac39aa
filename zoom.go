package germinal

// Font size limits in points
const (
	MinFontSize = 4.0
	MaxFontSize = 144.0
)

// FontSink receives the font to render with
type FontSink interface {
	ApplyFont(f Font)
}

// FontZoom tracks the terminal font and its zoom level. The default size is
// captured whenever the configured font changes and is what Reset returns to.
type FontZoom struct {
	sink        FontSink
	font        Font
	defaultSize float64
}

// NewFontZoom creates a zoom controller applying fonts to sink
func NewFontZoom(sink FontSink) *FontZoom {
	return &FontZoom{
		sink:        sink,
		font:        ParseFont(""),
		defaultSize: DefaultFontSize,
	}
}

func clampFontSize(size float64) float64 {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// UpdateFont applies a new font description and makes its size the default
func (z *FontZoom) UpdateFont(desc string) {
	f := ParseFont(desc)
	f.Size = clampFontSize(f.Size)
	z.font = f
	z.defaultSize = f.Size
	z.apply()
}

// CaptureDefault remembers the current size as the default
func (z *FontZoom) CaptureDefault() {
	z.defaultSize = z.font.Size
}

// Zoom grows the font by one point
func (z *FontZoom) Zoom() {
	z.adjust(1)
}

// Dezoom shrinks the font by one point
func (z *FontZoom) Dezoom() {
	z.adjust(-1)
}

// Reset returns to the default size
func (z *FontZoom) Reset() {
	z.font.Size = clampFontSize(z.defaultSize)
	z.apply()
}

func (z *FontZoom) adjust(delta float64) {
	z.font.Size = clampFontSize(z.font.Size + delta)
	z.apply()
}

func (z *FontZoom) apply() {
	if z.sink != nil {
		z.sink.ApplyFont(z.font.WithSize(z.font.Size))
	}
}

// Font returns the font currently applied
func (z *FontZoom) Font() Font {
	return z.font.WithSize(z.font.Size)
}

// Size returns the current size in points
func (z *FontZoom) Size() float64 {
	return z.font.Size
}

// DefaultSize returns the size Reset goes back to
func (z *FontZoom) DefaultSize() float64 {
	return z.defaultSize
}
