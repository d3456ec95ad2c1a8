// Package glyphcache maps Unicode code points to glyphs packed into a growing
// list of atlas pages.
//
// A [Cache] is bound to one font, one pixel height and one page size. The
// first [Cache.Get] for a code point rasterizes the glyph, pads it with a one
// pixel border, places it in the first page with room (creating a page when
// none has any) and uploads the bitmap. The resulting [Entry] carries the page
// index, normalized texture coordinates and screen metrics, and is returned
// unchanged by every later call.
//
// Glyphs that cannot be loaded are replaced by the fallback glyph (a space by
// default). Substitutions are not remembered, so a code point that fails keeps
// failing until it is loaded successfully.
//
// Pages are never freed or repacked. A Cache is not safe for concurrent use,
// except for [Cache.Stats], [Cache.Pages] and [Cache.PageInfos], which may be
// read from any goroutine.
package glyphcache
