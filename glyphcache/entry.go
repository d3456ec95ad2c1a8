package glyphcache

import "github.com/gogpu/glyphatlas/atlas"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Entry is the cached placement and metrics of one glyph.
//
// Texture coordinates are page pixels divided by the page size. The top-left
// texture corner has the larger V, matching a bottom-up texture origin.
// Screen offsets and advances are pixels divided by the pixel height, with Y
// growing up from the baseline.
type Entry struct {
	Code rune

	// Page indexes the cache's page list, -1 for the newline entry.
	Page int

	// Surface is the backing surface of Page, nil for the newline entry.
	Surface atlas.Surface

	ScreenTopLeft     Vec2
	ScreenBottomRight Vec2

	TextureTopLeft     Vec2
	TextureBottomRight Vec2

	AdvanceX, AdvanceY float32

	// Newline marks the line break entry. It has no footprint and advances
	// the pen down by one line.
	Newline bool

	// Rotated marks a glyph stored transposed in its page: texture X runs
	// along the glyph's Y axis.
	Rotated bool
}
