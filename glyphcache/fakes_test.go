package glyphcache

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/raster"
)

type fakeFont string

func (f fakeFont) Name() string { return string(f) }

// fakeRasterizer serves fixed bitmaps. Code points without a glyph or an
// error are undefined.
type fakeRasterizer struct {
	glyphs     map[rune]*raster.Glyph
	fail       map[rune]error
	lineHeight float32
	locateErr  error
	calls      map[rune]int
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{
		glyphs: map[rune]*raster.Glyph{
			' ': {AdvanceX: 4},
		},
		fail:       make(map[rune]error),
		lineHeight: 20,
		calls:      make(map[rune]int),
	}
}

// define adds a w x h glyph whose pixel (x, y) has value x+y*w+1.
func (r *fakeRasterizer) define(code rune, w, h int) *raster.Glyph {
	g := &raster.Glyph{
		Width:    w,
		Height:   h,
		Pixels:   make([]byte, w*h),
		Left:     1,
		Top:      h,
		AdvanceX: float32(w + 1),
	}
	for i := range g.Pixels {
		g.Pixels[i] = byte(i + 1)
	}
	r.glyphs[code] = g
	return g
}

func (r *fakeRasterizer) LocateFont(name string) (raster.Font, error) {
	if r.locateErr != nil {
		return nil, r.locateErr
	}
	return fakeFont(name), nil
}

func (r *fakeRasterizer) Rasterize(_ raster.Font, code rune, _ int) (*raster.Glyph, error) {
	r.calls[code]++
	if err, ok := r.fail[code]; ok {
		return nil, err
	}
	g, ok := r.glyphs[code]
	if !ok {
		return nil, fmt.Errorf("%w: %U", raster.ErrGlyphUndefined, code)
	}
	cp := *g
	return &cp, nil
}

func (r *fakeRasterizer) LineHeight(raster.Font, int) float32 {
	return r.lineHeight
}

var errOutOfSurfaces = errors.New("out of surfaces")

// limitedAllocator creates at most limit surfaces.
type limitedAllocator struct {
	*atlas.AlphaAllocator
	limit   int
	created int
}

func newLimitedAllocator(limit int) *limitedAllocator {
	return &limitedAllocator{AlphaAllocator: atlas.NewAlphaAllocator(), limit: limit}
}

func (a *limitedAllocator) CreateSurface(size int) (atlas.Surface, error) {
	if a.created >= a.limit {
		return nil, errOutOfSurfaces
	}
	a.created++
	return a.AlphaAllocator.CreateSurface(size)
}

var errUploadRejected = errors.New("upload rejected")

// rejectingAllocator fails every upload once reject is set.
type rejectingAllocator struct {
	*atlas.AlphaAllocator
	reject bool
}

func (a *rejectingAllocator) UploadRegion(s atlas.Surface, x, y, width, height int, pixels []byte) error {
	if a.reject {
		return errUploadRejected
	}
	return a.AlphaAllocator.UploadRegion(s, x, y, width, height, pixels)
}
