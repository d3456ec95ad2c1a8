package raster

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// XImage rasterizes glyphs with golang.org/x/image/font/opentype.
// It is safe for concurrent use.
type XImage struct {
	hinting font.Hinting
}

// NewXImage returns a rasterizer that renders with full hinting.
func NewXImage() *XImage {
	return &XImage{hinting: font.HintingFull}
}

// NewXImageWithHinting returns a rasterizer with the given hinting mode.
func NewXImageWithHinting(h font.Hinting) *XImage {
	return &XImage{hinting: h}
}

// ximageFont is a parsed sfnt font with one face per pixel height.
type ximageFont struct {
	name string
	font *opentype.Font

	mu    sync.Mutex
	buf   sfnt.Buffer
	faces map[int]font.Face
}

func (f *ximageFont) Name() string { return f.name }

// LocateFont implements Rasterizer.
func (r *XImage) LocateFont(name string) (Font, error) {
	src, err := FindFont(name)
	if err != nil {
		return nil, err
	}
	return r.ParseFont(src.Name, src.Data)
}

// ParseFont loads font data directly. For collections the first font is used.
func (r *XImage) ParseFont(name string, data []byte) (Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		coll, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, fmt.Errorf("raster: failed to parse font %q: %w", name, err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("raster: failed to parse font %q: %w", name, err)
		}
	}
	return &ximageFont{name: name, font: f, faces: make(map[int]font.Face)}, nil
}

// face returns the cached face for pixelHeight. Must be called with f.mu held.
func (r *XImage) face(f *ximageFont, pixelHeight int) (font.Face, error) {
	if face, ok := f.faces[pixelHeight]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(pixelHeight),
		DPI:     72,
		Hinting: r.hinting,
	})
	if err != nil {
		return nil, err
	}
	f.faces[pixelHeight] = face
	return face, nil
}

// Rasterize implements Rasterizer.
func (r *XImage) Rasterize(fnt Font, code rune, pixelHeight int) (*Glyph, error) {
	f, ok := fnt.(*ximageFont)
	if !ok {
		return nil, ErrForeignFont
	}
	if pixelHeight <= 0 {
		return nil, ErrInvalidPixelHeight
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	idx, err := f.font.GlyphIndex(&f.buf, code)
	if err != nil {
		return nil, &RasterizationError{Code: code, Font: f.name, Reason: "glyph lookup failed", Err: err}
	}
	if idx == 0 {
		return nil, fmt.Errorf("%w: %U in %q", ErrGlyphUndefined, code, f.name)
	}

	face, err := r.face(f, pixelHeight)
	if err != nil {
		return nil, &RasterizationError{Code: code, Font: f.name, Reason: "cannot create face", Err: err}
	}

	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, code)
	if !ok {
		return nil, &RasterizationError{Code: code, Font: f.name, Reason: "outline could not be rendered"}
	}

	g := &Glyph{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		Left:     dr.Min.X,
		Top:      -dr.Min.Y,
		AdvanceX: float32(advance) / 64,
	}
	if g.Empty() {
		g.Width, g.Height = 0, 0
		return g, nil
	}

	dst := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
	g.Pixels = dst.Pix
	return g, nil
}

// LineHeight implements Rasterizer.
func (r *XImage) LineHeight(fnt Font, pixelHeight int) float32 {
	f, ok := fnt.(*ximageFont)
	if !ok || pixelHeight <= 0 {
		return float32(pixelHeight)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	face, err := r.face(f, pixelHeight)
	if err != nil {
		return float32(pixelHeight)
	}
	return float32(face.Metrics().Height) / 64
}
