package raster

// Font is a font loaded by a Rasterizer. Values are only meaningful to the
// Rasterizer that returned them.
type Font interface {
	// Name returns the name the font was located by.
	Name() string
}

// Rasterizer locates fonts and renders glyph bitmaps.
type Rasterizer interface {
	// LocateFont resolves name to a loaded font.
	// It returns an error wrapping ErrFontNotFound when nothing matches.
	LocateFont(name string) (Font, error)

	// Rasterize renders code at pixelHeight pixels per em.
	// It returns ErrGlyphUndefined when the font has no glyph for code and a
	// *RasterizationError when the glyph cannot be rendered.
	Rasterize(f Font, code rune, pixelHeight int) (*Glyph, error)

	// LineHeight returns the baseline-to-baseline distance in pixels.
	LineHeight(f Font, pixelHeight int) float32
}

// Glyph is a rendered glyph bitmap with its metrics.
type Glyph struct {
	// Width and Height are the bitmap dimensions in pixels.
	Width, Height int

	// Pixels holds Height rows of Width coverage bytes, tightly packed.
	Pixels []byte

	// Left is the offset from the pen position to the left edge of the bitmap.
	Left int

	// Top is the distance from the baseline up to the top edge of the bitmap.
	Top int

	// AdvanceX and AdvanceY move the pen after the glyph, in pixels.
	AdvanceX, AdvanceY float32
}

// Empty reports whether the glyph has no visible pixels.
func (g *Glyph) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// At returns the coverage at (x, y).
func (g *Glyph) At(x, y int) byte {
	return g.Pixels[y*g.Width+x]
}

// Transpose returns a copy of the bitmap with rows and columns swapped, as
// stored in a rotated atlas placement. Metrics are copied unchanged.
func (g *Glyph) Transpose() *Glyph {
	t := *g
	t.Width, t.Height = g.Height, g.Width
	t.Pixels = make([]byte, len(g.Pixels))
	for y := range g.Height {
		for x := range g.Width {
			t.Pixels[x*t.Width+y] = g.Pixels[y*g.Width+x]
		}
	}
	return &t
}
