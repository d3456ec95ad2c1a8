// Package glyphatlas packs rasterized glyphs into fixed-size texture atlas
// pages and caches their placement and metrics per Unicode code point.
//
// # Overview
//
// The module is organized bottom-up:
//   - skyline: a skyline 2D bin packer for one square surface
//   - atlas: an atlas page (one packer plus one backing surface) and the
//     surface allocator interface, with an in-memory implementation
//   - raster: the glyph rasterization service (golang.org/x/image and
//     go-text/typesetting backends) and system font lookup
//   - glyphcache: the code point cache that grows pages on demand and
//     substitutes a fallback glyph when a glyph cannot be loaded
//   - gpusurface: a surface allocator backed by gpucontext textures
//   - atlasmetrics: a Prometheus collector for cache statistics
//
// # Quick Start
//
//	r := raster.NewXImage()
//	cache, err := glyphcache.New(glyphcache.DefaultConfig(), r, atlas.NewAlphaAllocator())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range cache.GetString("Hello, atlas") {
//	    // e.Page, e.TextureTopLeft, e.ScreenBottomRight, e.AdvanceX ...
//	}
//
// # Coordinate System
//
// Page coordinates have their origin at the top-left corner, X grows right
// and Y grows down. Texture coordinates in cache entries are normalized by
// the page size, screen offsets by the font pixel height.
//
// # Logging
//
// Nothing is logged by default. Use [SetLogger] to route diagnostics to a
// [log/slog] logger.
package glyphatlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
