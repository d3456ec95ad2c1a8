package glyphcache

import "github.com/gogpu/glyphatlas/atlas"

// Stats is a snapshot of cache statistics.
type Stats struct {
	// Hits counts Get calls answered from the cache.
	Hits uint64

	// Misses counts Get calls that had to load a glyph.
	Misses uint64

	// Fallbacks counts Get calls answered with the fallback glyph.
	Fallbacks uint64

	// Pages is the number of atlas pages.
	Pages int

	// Entries is the number of cached code points.
	Entries int
}

// Stats returns cache statistics. It is safe to call from any goroutine.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Fallbacks: c.fallbacks.Load(),
		Pages:     int(c.pageCount.Load()),
		Entries:   int(c.size.Load()),
	}
}

// Pages returns the atlas pages in creation order.
func (c *Cache) Pages() []*atlas.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*atlas.Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// PageInfos returns a snapshot of every page's statistics. Like Stats it may
// be called from any goroutine.
func (c *Cache) PageInfos() []atlas.PageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	infos := make([]atlas.PageInfo, len(c.pages))
	for i, p := range c.pages {
		infos[i] = p.Info()
	}
	return infos
}

// Len returns the number of cached code points. It is safe to call from any
// goroutine.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Has reports whether code is cached, without loading it. Like Get it must
// be called from the goroutine that owns the cache.
func (c *Cache) Has(code rune) bool {
	_, ok := c.entries[code]
	return ok
}

// Fallback returns the entry substituted for glyphs that fail to load.
func (c *Cache) Fallback() Entry {
	return c.fallback
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// FontName returns the name of the font the cache renders.
func (c *Cache) FontName() string {
	return c.font.Name()
}
