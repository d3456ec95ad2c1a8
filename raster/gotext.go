package raster

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// GoText rasterizes glyph outlines read with go-text/typesetting.
// Bitmap and SVG glyphs are reported as a *RasterizationError.
type GoText struct{}

// NewGoText returns a go-text backed rasterizer.
func NewGoText() *GoText {
	return &GoText{}
}

// gotextFont wraps a go-text face. Face is not safe for concurrent use.
type gotextFont struct {
	name string
	mu   sync.Mutex
	face *font.Face
}

func (f *gotextFont) Name() string { return f.name }

// LocateFont implements Rasterizer.
func (r *GoText) LocateFont(name string) (Font, error) {
	src, err := FindFont(name)
	if err != nil {
		return nil, err
	}
	return r.ParseFont(src.Name, src.Data)
}

// ParseFont loads font data directly. For collections the first face is used.
func (r *GoText) ParseFont(name string, data []byte) (Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		faces, cerr := font.ParseTTC(bytes.NewReader(data))
		if cerr != nil || len(faces) == 0 {
			return nil, fmt.Errorf("raster: failed to parse font %q: %w", name, err)
		}
		face = faces[0]
	}
	return &gotextFont{name: name, face: face}, nil
}

// Rasterize implements Rasterizer.
func (r *GoText) Rasterize(fnt Font, code rune, pixelHeight int) (*Glyph, error) {
	f, ok := fnt.(*gotextFont)
	if !ok {
		return nil, ErrForeignFont
	}
	if pixelHeight <= 0 {
		return nil, ErrInvalidPixelHeight
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	gid, ok := f.face.NominalGlyph(code)
	if !ok || gid == 0 {
		return nil, fmt.Errorf("%w: %U in %q", ErrGlyphUndefined, code, f.name)
	}

	scale := float32(pixelHeight) / float32(f.face.Upem())
	g := &Glyph{AdvanceX: f.face.HorizontalAdvance(gid) * scale}

	outline, ok := f.face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return nil, &RasterizationError{Code: code, Font: f.name, Reason: "glyph has no outline"}
	}
	if len(outline.Segments) == 0 {
		return g, nil
	}

	minX, minY, maxX, maxY := outlineBounds(outline)
	left := int(math.Floor(float64(minX * scale)))
	right := int(math.Ceil(float64(maxX * scale)))
	top := int(math.Ceil(float64(maxY * scale)))
	bottom := int(math.Floor(float64(minY * scale)))
	g.Left, g.Top = left, top
	g.Width, g.Height = right-left, top-bottom
	if g.Empty() {
		g.Width, g.Height = 0, 0
		return g, nil
	}

	// Outline Y grows up; bitmap rows grow down from the top edge.
	tx := func(x, y float32) (float32, float32) {
		return x*scale - float32(left), float32(top) - y*scale
	}

	z := vector.NewRasterizer(g.Width, g.Height)
	for _, s := range outline.Segments {
		a := s.Args
		switch s.Op {
		case ot.SegmentOpMoveTo:
			z.MoveTo(tx(a[0].X, a[0].Y))
		case ot.SegmentOpLineTo:
			z.LineTo(tx(a[0].X, a[0].Y))
		case ot.SegmentOpQuadTo:
			bx, by := tx(a[0].X, a[0].Y)
			cx, cy := tx(a[1].X, a[1].Y)
			z.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := tx(a[0].X, a[0].Y)
			cx, cy := tx(a[1].X, a[1].Y)
			dx, dy := tx(a[2].X, a[2].Y)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	g.Pixels = dst.Pix
	return g, nil
}

// LineHeight implements Rasterizer.
func (r *GoText) LineHeight(fnt Font, pixelHeight int) float32 {
	f, ok := fnt.(*gotextFont)
	if !ok || pixelHeight <= 0 {
		return float32(pixelHeight)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ext, ok := f.face.FontHExtents()
	if !ok {
		return float32(pixelHeight)
	}
	scale := float32(pixelHeight) / float32(f.face.Upem())
	return (ext.Ascender - ext.Descender + ext.LineGap) * scale
}

// outlineBounds returns the control box of o in font units.
func outlineBounds(o font.GlyphOutline) (minX, minY, maxX, maxY float32) {
	minX, minY = math.MaxFloat32, math.MaxFloat32
	maxX, maxY = -math.MaxFloat32, -math.MaxFloat32
	for _, s := range o.Segments {
		n := 1
		switch s.Op {
		case ot.SegmentOpQuadTo:
			n = 2
		case ot.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range s.Args[:n] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}
