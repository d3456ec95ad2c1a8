package glyphcache

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/raster"
)

func smallConfig(pageSize, pixelHeight int) Config {
	cfg := DefaultConfig()
	cfg.PageSize = pageSize
	cfg.PixelHeight = pixelHeight
	return cfg
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func nearVec(a, b Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func mustNew(t *testing.T, cfg Config, r raster.Rasterizer, alloc atlas.SurfaceAllocator) *Cache {
	t.Helper()
	c, err := New(cfg, r, alloc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_WarmsASCII(t *testing.T) {
	r := newFakeRasterizer()
	for code := 'A'; code <= 'Z'; code++ {
		r.define(code, 10, 12)
	}
	c := mustNew(t, smallConfig(128, 16), r, atlas.NewAlphaAllocator())

	// Space, newline and the 26 capitals.
	if c.Len() != 28 {
		t.Errorf("Len() = %d, want 28", c.Len())
	}
	for _, code := range []rune{' ', '\n', 'A', 'Z'} {
		if !c.Has(code) {
			t.Errorf("Has(%q) = false after warm-up", code)
		}
	}
	for _, code := range []rune{0, 'a', 127, 'é'} {
		if c.Has(code) {
			t.Errorf("Has(%q) = true, want undefined glyphs left absent", code)
		}
	}
	if r.calls[' '] != 1 {
		t.Errorf("space rasterized %d times, want 1", r.calls[' '])
	}

	st := c.Stats()
	if st.Hits != 0 || st.Misses != 0 || st.Fallbacks != 0 {
		t.Errorf("warm-up changed Get counters: %+v", st)
	}
	if st.Entries != 28 || st.Pages != len(c.Pages()) || st.Pages == 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestNew_Errors(t *testing.T) {
	alloc := atlas.NewAlphaAllocator()

	bad := DefaultConfig()
	bad.PageSize = 0
	var ce *ConfigError
	if _, err := New(bad, newFakeRasterizer(), alloc); !errors.As(err, &ce) {
		t.Errorf("New(bad config) error = %v, want *ConfigError", err)
	}
	if _, err := New(DefaultConfig(), nil, alloc); !errors.Is(err, ErrNilRasterizer) {
		t.Errorf("New(nil rasterizer) error = %v", err)
	}
	if _, err := New(DefaultConfig(), newFakeRasterizer(), nil); !errors.Is(err, ErrNilAllocator) {
		t.Errorf("New(nil allocator) error = %v", err)
	}

	r := newFakeRasterizer()
	r.locateErr = raster.ErrFontNotFound
	if _, err := New(DefaultConfig(), r, alloc); !errors.Is(err, raster.ErrFontNotFound) {
		t.Errorf("New(missing font) error = %v, want ErrFontNotFound", err)
	}

	r = newFakeRasterizer()
	delete(r.glyphs, ' ')
	_, err := New(DefaultConfig(), r, alloc)
	if !errors.Is(err, ErrFallbackUnavailable) || !errors.Is(err, raster.ErrGlyphUndefined) {
		t.Errorf("New(no space glyph) error = %v, want ErrFallbackUnavailable wrapping ErrGlyphUndefined", err)
	}

	_, err = New(DefaultConfig(), newFakeRasterizer(), newLimitedAllocator(0))
	if !errors.Is(err, ErrFallbackUnavailable) || !errors.Is(err, errOutOfSurfaces) {
		t.Errorf("New(no surfaces) error = %v, want ErrFallbackUnavailable wrapping allocator error", err)
	}
}

func TestNew_CustomFallback(t *testing.T) {
	r := newFakeRasterizer()
	r.define('?', 6, 10)
	cfg := smallConfig(64, 16)
	cfg.Fallback = '?'
	c := mustNew(t, cfg, r, atlas.NewAlphaAllocator())

	if got := c.Get('é'); got != c.Get('?') || got.Code != '?' {
		t.Errorf("Get('é') = %+v, want the '?' entry", got)
	}
}

func TestGet_Idempotent(t *testing.T) {
	r := newFakeRasterizer()
	r.define('A', 10, 12)
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())

	first := c.Get('A')
	second := c.Get('A')
	if first != second {
		t.Errorf("Get('A') changed: %+v then %+v", first, second)
	}
	if r.calls['A'] != 1 {
		t.Errorf("'A' rasterized %d times, want 1", r.calls['A'])
	}
	if st := c.Stats(); st.Hits != 2 || st.Misses != 0 {
		t.Errorf("Stats() = %+v, want 2 hits", st)
	}
}

func TestGet_TextureAndScreenMetrics(t *testing.T) {
	r := newFakeRasterizer()
	r.define('A', 10, 12)
	alloc := atlas.NewAlphaAllocator()
	c := mustNew(t, smallConfig(64, 16), r, alloc)

	// The padded space takes (0,0)-(2,2); padded 'A' lands at (0,2) and its
	// bitmap is uploaded at (1,3).
	e := c.Get('A')
	if e.Page != 0 || e.Surface == nil || e.Rotated || e.Newline {
		t.Fatalf("Get('A') = %+v", e)
	}
	checks := []struct {
		name      string
		got, want Vec2
	}{
		{"TextureTopLeft", e.TextureTopLeft, Vec2{1.0 / 64, 15.0 / 64}},
		{"TextureBottomRight", e.TextureBottomRight, Vec2{11.0 / 64, 3.0 / 64}},
		{"ScreenTopLeft", e.ScreenTopLeft, Vec2{1.0 / 16, 0}},
		{"ScreenBottomRight", e.ScreenBottomRight, Vec2{11.0 / 16, 12.0 / 16}},
	}
	for _, ck := range checks {
		if !nearVec(ck.got, ck.want) {
			t.Errorf("%s = %v, want %v", ck.name, ck.got, ck.want)
		}
	}
	if !near(e.AdvanceX, 11.0/16) || e.AdvanceY != 0 {
		t.Errorf("advance = (%v, %v), want (%v, 0)", e.AdvanceX, e.AdvanceY, 11.0/16)
	}

	img, err := alloc.Image(e.Surface)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.AlphaAt(1, 3).A; got != 1 {
		t.Errorf("first bitmap pixel = %d, want 1", got)
	}
	if got := img.AlphaAt(10, 14).A; got != 120 {
		t.Errorf("last bitmap pixel = %d, want 120", got)
	}
	if got := img.AlphaAt(0, 2).A; got != 0 {
		t.Errorf("padding pixel = %d, want 0", got)
	}
}

func TestGet_FallbackNotMemoized(t *testing.T) {
	r := newFakeRasterizer()
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())
	space := c.Get(' ')

	for i := 1; i <= 2; i++ {
		if got := c.Get('é'); got != space {
			t.Errorf("Get('é') = %+v, want space entry", got)
		}
		if c.Has('é') {
			t.Fatal("fallback substitution was cached")
		}
		if r.calls['é'] != i {
			t.Errorf("after %d Get calls 'é' rasterized %d times", i, r.calls['é'])
		}
	}
	if got := c.Fallback(); got != space {
		t.Errorf("Fallback() = %+v, want space entry", got)
	}
	if st := c.Stats(); st.Fallbacks != 2 || st.Misses != 2 || st.Hits != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestGet_RasterizationErrorFallsBack(t *testing.T) {
	r := newFakeRasterizer()
	r.define('B', 8, 8)
	r.fail['B'] = &raster.RasterizationError{Code: 'B', Reason: "broken outline"}
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())

	if c.Has('B') {
		t.Fatal("failed warm-up glyph should be absent")
	}
	if got := c.Get('B'); got != c.Fallback() {
		t.Errorf("Get('B') = %+v, want fallback", got)
	}
	delete(r.fail, 'B')
	if got := c.Get('B'); got.Code != 'B' {
		t.Errorf("Get('B') after recovery = %+v, want a real entry", got)
	}
	if !c.Has('B') {
		t.Error("recovered glyph should be cached")
	}
}

func TestGet_PageGrowthAndOverflow(t *testing.T) {
	r := newFakeRasterizer()
	r.define('a', 32, 32)
	r.define('b', 32, 32)
	r.define('é', 32, 32)
	r.define('Ω', 33, 33)
	c := mustNew(t, smallConfig(34, 32), r, atlas.NewAlphaAllocator())

	// Space on page 0, each padded 34x34 letter fills a page of its own.
	if n := len(c.Pages()); n != 3 {
		t.Fatalf("pages after warm-up = %d, want 3", n)
	}
	if c.Get('a').Page != 1 || c.Get('b').Page != 2 {
		t.Errorf("pages of 'a', 'b' = %d, %d; want 1, 2", c.Get('a').Page, c.Get('b').Page)
	}

	e := c.Get('é')
	if e.Page != 3 || len(c.Pages()) != 4 {
		t.Fatalf("Get('é') page = %d with %d pages, want page 3 of 4", e.Page, len(c.Pages()))
	}
	if !nearVec(e.TextureTopLeft, Vec2{1.0 / 34, 33.0 / 34}) || !nearVec(e.TextureBottomRight, Vec2{33.0 / 34, 1.0 / 34}) {
		t.Errorf("new page placement texture = %v, %v; want glyph at (0,0)", e.TextureTopLeft, e.TextureBottomRight)
	}
	if e.Surface != c.Pages()[3].Surface() {
		t.Error("entry surface should be its page's surface")
	}

	if got := c.Get('Ω'); got != c.Fallback() {
		t.Errorf("Get('Ω') = %+v, want fallback for an oversized glyph", got)
	}
	if len(c.Pages()) != 4 {
		t.Errorf("overflow created a page: %d pages", len(c.Pages()))
	}

	_, err := c.load('Ω')
	var oe *OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("load('Ω') error = %v, want *OverflowError", err)
	}
	if oe.Width != 35 || oe.Height != 35 || oe.PageSize != 34 {
		t.Errorf("OverflowError = %+v", oe)
	}
}

func TestGet_PageCreationFailurePanics(t *testing.T) {
	r := newFakeRasterizer()
	r.define('a', 32, 32)
	r.define('é', 32, 32)
	c := mustNew(t, smallConfig(34, 32), r, newLimitedAllocator(2))

	defer func() {
		v := recover()
		pe, ok := v.(*PageError)
		if !ok {
			t.Fatalf("recover() = %v, want *PageError", v)
		}
		if pe.Index != 2 || !errors.Is(pe, errOutOfSurfaces) {
			t.Errorf("PageError = %v", pe)
		}
		if c.Has('é') {
			t.Error("glyph cached despite failed page creation")
		}
	}()
	c.Get('é')
}

func TestGet_UploadFailurePanics(t *testing.T) {
	r := newFakeRasterizer()
	r.define('é', 8, 10)
	alloc := &rejectingAllocator{AlphaAllocator: atlas.NewAlphaAllocator()}
	c := mustNew(t, smallConfig(64, 16), r, alloc)
	alloc.reject = true

	defer func() {
		v := recover()
		pe, ok := v.(*PageError)
		if !ok {
			t.Fatalf("recover() = %v, want *PageError", v)
		}
		if pe.Op != "upload" || pe.Index != 0 || !errors.Is(pe, errUploadRejected) {
			t.Errorf("PageError = %+v", pe)
		}
		if c.Has('é') {
			t.Error("glyph cached despite failed upload")
		}
		if got := c.Stats().Fallbacks; got != 0 {
			t.Errorf("Stats().Fallbacks = %d, want 0", got)
		}
	}()
	c.Get('é')
}

func TestLoad_UploadFailure(t *testing.T) {
	r := newFakeRasterizer()
	r.define('é', 8, 10)
	alloc := &rejectingAllocator{AlphaAllocator: atlas.NewAlphaAllocator()}
	c := mustNew(t, smallConfig(64, 16), r, alloc)
	alloc.reject = true

	err := c.Load("é")
	var pe *PageError
	if !errors.As(err, &pe) || pe.Op != "upload" || !errors.Is(err, errUploadRejected) {
		t.Errorf("Load() error = %v, want upload *PageError", err)
	}
}

func TestLen_ConcurrentReaders(t *testing.T) {
	r := newFakeRasterizer()
	for code := 'a'; code <= 'z'; code++ {
		r.define(code+0x100, 4, 4)
	}
	c := mustNew(t, smallConfig(128, 16), r, atlas.NewAlphaAllocator())
	before := c.Len()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if n := c.Len(); n < before {
				t.Errorf("Len() = %d, want >= %d", n, before)
				return
			}
			_ = c.Stats()
			_ = c.PageInfos()
		}
	}()
	for code := 'a'; code <= 'z'; code++ {
		c.Get(code + 0x100)
	}
	<-done

	if got, want := c.Len(), before+26; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestNew_PageFailureDuringWarmUp(t *testing.T) {
	r := newFakeRasterizer()
	r.define('a', 32, 32)
	_, err := New(smallConfig(34, 32), r, newLimitedAllocator(1))
	var pe *PageError
	if !errors.As(err, &pe) || pe.Index != 1 {
		t.Errorf("New() error = %v, want *PageError for page 1", err)
	}
}

func TestGet_Rotated(t *testing.T) {
	r := newFakeRasterizer()
	g := r.define('é', 20, 4)
	cfg := smallConfig(64, 16)
	cfg.AllowRotation = true
	alloc := atlas.NewAlphaAllocator()
	c := mustNew(t, cfg, r, alloc)

	// Padded 22x6 fits best as 6x22 at (0,2); the bitmap is stored
	// transposed at (1,3).
	e := c.Get('é')
	if !e.Rotated {
		t.Fatalf("Get('é') = %+v, want rotated", e)
	}
	if !nearVec(e.TextureTopLeft, Vec2{1.0 / 64, 23.0 / 64}) || !nearVec(e.TextureBottomRight, Vec2{5.0 / 64, 3.0 / 64}) {
		t.Errorf("texture = %v, %v", e.TextureTopLeft, e.TextureBottomRight)
	}
	if !nearVec(e.ScreenBottomRight.Add(Vec2{X: -e.ScreenTopLeft.X, Y: -e.ScreenTopLeft.Y}), Vec2{20.0 / 16, 4.0 / 16}) {
		t.Errorf("screen size should stay unrotated: %v to %v", e.ScreenTopLeft, e.ScreenBottomRight)
	}

	img, err := alloc.Image(e.Surface)
	if err != nil {
		t.Fatal(err)
	}
	for y := range g.Height {
		for x := range g.Width {
			if got, want := img.AlphaAt(1+y, 3+x).A, g.At(x, y); got != want {
				t.Fatalf("stored (%d,%d) = %d, want glyph (%d,%d) = %d", 1+y, 3+x, got, x, y, want)
			}
		}
	}
}

func TestGet_Newline(t *testing.T) {
	r := newFakeRasterizer()
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())

	e := c.Get('\n')
	if !e.Newline || e.Page != -1 || e.Surface != nil {
		t.Errorf("Get('\\n') = %+v", e)
	}
	if !near(e.AdvanceY, 20.0/16) || e.AdvanceX != 0 {
		t.Errorf("newline advance = (%v, %v), want (0, %v)", e.AdvanceX, e.AdvanceY, 20.0/16)
	}
	if r.calls['\n'] != 0 {
		t.Error("newline should not be rasterized")
	}

	cfg := smallConfig(64, 16)
	cfg.LineHeight = 24
	c = mustNew(t, cfg, newFakeRasterizer(), atlas.NewAlphaAllocator())
	if got := c.Get('\n').AdvanceY; !near(got, 1.5) {
		t.Errorf("newline AdvanceY with LineHeight 24 = %v, want 1.5", got)
	}
}

func TestLoad(t *testing.T) {
	r := newFakeRasterizer()
	r.define('é', 8, 10)
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())

	// Decomposed e + combining acute normalizes to U+00E9.
	if err := c.Load("e\u0301\u0416"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !c.Has('é') {
		t.Error("Load should cache the composed glyph")
	}
	if c.Has('\u0301') || c.Has('\u0416') {
		t.Error("Load should not cache undefined glyphs")
	}
	if st := c.Stats(); st.Hits != 0 || st.Misses != 0 || st.Fallbacks != 0 {
		t.Errorf("Load changed Get counters: %+v", st)
	}
}

func TestLoad_PageFailure(t *testing.T) {
	r := newFakeRasterizer()
	r.define('é', 32, 32)
	c := mustNew(t, smallConfig(34, 32), r, newLimitedAllocator(1))

	err := c.Load("é")
	if !errors.Is(err, errOutOfSurfaces) {
		t.Errorf("Load() error = %v, want allocator error", err)
	}
}

func TestGetString(t *testing.T) {
	r := newFakeRasterizer()
	r.define('A', 10, 12)
	r.define('é', 8, 10)
	c := mustNew(t, smallConfig(64, 16), r, atlas.NewAlphaAllocator())

	got := c.GetString("A\ne\u0301?")
	want := []rune{'A', '\n', 'é', ' '}
	if len(got) != len(want) {
		t.Fatalf("GetString() returned %d entries, want %d", len(got), len(want))
	}
	for i, code := range want {
		if got[i].Code != code {
			t.Errorf("entry %d code = %q, want %q", i, got[i].Code, code)
		}
	}
	if !got[1].Newline {
		t.Error("second entry should be the newline")
	}
}

func TestPageInfos(t *testing.T) {
	r := newFakeRasterizer()
	r.define('a', 32, 32)
	c := mustNew(t, smallConfig(34, 32), r, atlas.NewAlphaAllocator())

	infos := c.PageInfos()
	if len(infos) != 2 {
		t.Fatalf("len(PageInfos()) = %d, want 2", len(infos))
	}
	if infos[1].Index != 1 || infos[1].Placed != 1 || infos[1].Utilization != 1 {
		t.Errorf("PageInfos()[1] = %+v", infos[1])
	}
	if c.Config().PageSize != 34 || c.FontName() != "" {
		t.Errorf("Config() = %+v, FontName() = %q", c.Config(), c.FontName())
	}
}
