package glyphcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/raster"
	"github.com/gogpu/glyphatlas/skyline"
)

// padding is the transparent border kept around every glyph in a page.
const padding = 1

// asciiEnd bounds the code points warmed by LoadASCII.
const asciiEnd = 128

// Cache maps code points to glyphs packed into atlas pages.
type Cache struct {
	config Config
	raster raster.Rasterizer
	font   raster.Font
	alloc  atlas.SurfaceAllocator

	// mu guards pages against readers on other goroutines.
	mu       sync.Mutex
	pages    []*atlas.Page
	entries  map[rune]Entry
	fallback Entry

	// Statistics (atomic for lock-free reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	fallbacks atomic.Uint64
	pageCount atomic.Int64
	size      atomic.Int64
}

// New creates a cache for cfg, resolves its fallback glyph and warms it with
// the ASCII range.
func New(cfg Config, r raster.Rasterizer, alloc atlas.SurfaceAllocator) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNilRasterizer
	}
	if alloc == nil {
		return nil, ErrNilAllocator
	}

	f, err := r.LocateFont(cfg.FontName)
	if err != nil {
		return nil, fmt.Errorf("glyphcache: locate font %q: %w", cfg.FontName, err)
	}

	c := &Cache{
		config:  cfg,
		raster:  r,
		font:    f,
		alloc:   alloc,
		entries: make(map[rune]Entry),
	}

	c.fallback, err = c.load(cfg.Fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %U: %w", ErrFallbackUnavailable, cfg.Fallback, err)
	}

	if err := c.LoadASCII(); err != nil {
		return nil, err
	}

	glyphatlas.Logger().Debug("glyphcache: created",
		slog.String("font", f.Name()),
		slog.Int("pixel_height", cfg.PixelHeight),
		slog.Int("page_size", cfg.PageSize),
		slog.Int("entries", len(c.entries)),
		slog.Int("pages", len(c.pages)))
	return c, nil
}

// Get returns the entry for code, loading it on first use. When the glyph
// cannot be loaded the fallback entry is returned and nothing is stored for
// code. Get panics with a *PageError if a new atlas page is needed and the
// allocator fails to create it, or if the allocator rejects the glyph upload.
func (c *Cache) Get(code rune) Entry {
	if e, ok := c.entries[code]; ok {
		c.hits.Add(1)
		return e
	}
	c.misses.Add(1)

	e, err := c.load(code)
	if err == nil {
		return e
	}

	if pe := pageError(err); pe != nil {
		panic(pe)
	}

	c.fallbacks.Add(1)
	glyphatlas.Logger().Warn("glyphcache: using fallback glyph",
		slog.String("code", fmt.Sprintf("%U", code)),
		slog.String("fallback", fmt.Sprintf("%U", c.config.Fallback)),
		slog.String("error", err.Error()))
	return c.fallback
}

// GetString returns one entry per code point of text after NFC normalization.
func (c *Cache) GetString(text string) []Entry {
	text = norm.NFC.String(text)
	out := make([]Entry, 0, len(text))
	for _, r := range text {
		out = append(out, c.Get(r))
	}
	return out
}

// LoadASCII loads code points 0 to 127. Glyphs that fail to load are logged
// and left absent. Only a page failure is returned.
func (c *Cache) LoadASCII() error {
	for code := rune(0); code < asciiEnd; code++ {
		if _, err := c.load(code); err != nil {
			if pe := pageError(err); pe != nil {
				return pe
			}
			level := slog.LevelWarn
			if errors.Is(err, raster.ErrGlyphUndefined) {
				level = slog.LevelDebug
			}
			glyphatlas.Logger().Log(context.Background(), level, "glyphcache: ascii warm-up skipped glyph",
				slog.String("code", fmt.Sprintf("%U", code)),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// Load loads every code point of text after NFC normalization, ignoring
// glyphs that fail. Only a page failure is returned.
func (c *Cache) Load(text string) error {
	for _, r := range norm.NFC.String(text) {
		if _, err := c.load(r); err != nil {
			if pe := pageError(err); pe != nil {
				return pe
			}
		}
	}
	return nil
}

// load returns the cached entry for code or builds it.
func (c *Cache) load(code rune) (Entry, error) {
	if e, ok := c.entries[code]; ok {
		return e, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if code == '\n' {
		return c.store(c.newlineEntry()), nil
	}

	g, err := c.raster.Rasterize(c.font, code, c.config.PixelHeight)
	if err != nil {
		return Entry{}, err
	}

	w, h := g.Width+2*padding, g.Height+2*padding
	size := c.config.PageSize
	if w > size || h > size {
		return Entry{}, &OverflowError{Code: code, Width: w, Height: h, PageSize: size}
	}

	page, pl, ok := c.place(w, h)
	if !ok {
		if page, err = c.addPage(); err != nil {
			return Entry{}, err
		}
		if pl, _, ok = page.TryPlace(w, h); !ok {
			return Entry{}, &OverflowError{Code: code, Width: w, Height: h, PageSize: size}
		}
	}

	bitmap := g
	if pl.Rotated {
		bitmap = g.Transpose()
	}
	x, y := pl.Position.X+padding, pl.Position.Y+padding
	if !bitmap.Empty() {
		if err := page.Upload(x, y, bitmap.Width, bitmap.Height, bitmap.Pixels); err != nil {
			return Entry{}, &PageError{Index: page.Index(), Op: "upload", Err: fmt.Errorf("%U: %w", code, err)}
		}
	}

	e := c.glyphEntry(code, g, page, x, y, bitmap.Width, bitmap.Height, pl.Rotated)
	glyphatlas.Logger().Debug("glyphcache: glyph loaded",
		slog.String("code", fmt.Sprintf("%U", code)),
		slog.Int("page", page.Index()),
		slog.Int("x", pl.Position.X),
		slog.Int("y", pl.Position.Y),
		slog.Bool("rotated", pl.Rotated))
	return c.store(e), nil
}

// place offers a w x h rectangle to existing pages in creation order.
// Must be called with c.mu held.
func (c *Cache) place(w, h int) (*atlas.Page, skyline.Placement, bool) {
	for _, p := range c.pages {
		if pl, _, ok := p.TryPlace(w, h); ok {
			return p, pl, true
		}
	}
	return nil, skyline.Placement{}, false
}

// addPage appends a new empty page. Must be called with c.mu held.
func (c *Cache) addPage() (*atlas.Page, error) {
	index := len(c.pages)
	p, err := atlas.NewPage(index, c.config.PageSize, c.alloc, c.config.AllowRotation)
	if err != nil {
		return nil, &PageError{Index: index, Op: "create", Err: err}
	}
	c.pages = append(c.pages, p)
	c.pageCount.Store(int64(len(c.pages)))
	glyphatlas.Logger().Debug("glyphcache: page created",
		slog.Int("index", index),
		slog.Int("size", c.config.PageSize),
		slog.Uint64("surface", p.Surface().ID()))
	return p, nil
}

// glyphEntry computes the entry for a glyph whose bitmap was uploaded as a
// bw x bh block at (x, y) of page.
func (c *Cache) glyphEntry(code rune, g *raster.Glyph, page *atlas.Page, x, y, bw, bh int, rotated bool) Entry {
	s := float32(c.config.PageSize)
	px := float32(c.config.PixelHeight)

	t := Vec2{X: float32(x) / s, Y: float32(y) / s}
	tl := Vec2{X: float32(g.Left) / px, Y: float32(g.Top-g.Height) / px}

	return Entry{
		Code:               code,
		Page:               page.Index(),
		Surface:            page.Surface(),
		ScreenTopLeft:      tl,
		ScreenBottomRight:  tl.Add(Vec2{X: float32(g.Width) / px, Y: float32(g.Height) / px}),
		TextureTopLeft:     t.Add(Vec2{Y: float32(bh) / s}),
		TextureBottomRight: t.Add(Vec2{X: float32(bw) / s}),
		AdvanceX:           g.AdvanceX / px,
		AdvanceY:           g.AdvanceY / px,
		Rotated:            rotated,
	}
}

// newlineEntry builds the line break entry.
func (c *Cache) newlineEntry() Entry {
	lh := c.config.LineHeight
	if lh == 0 {
		lh = c.raster.LineHeight(c.font, c.config.PixelHeight)
	}
	return Entry{
		Code:     '\n',
		Page:     -1,
		AdvanceY: lh / float32(c.config.PixelHeight),
		Newline:  true,
	}
}

// pageError extracts a *PageError from err's chain.
func pageError(err error) *PageError {
	var pe *PageError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

func (c *Cache) store(e Entry) Entry {
	c.entries[e.Code] = e
	c.size.Store(int64(len(c.entries)))
	return e
}
