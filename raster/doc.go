// Package raster turns Unicode code points into 8-bit coverage bitmaps.
//
// The [Rasterizer] interface is the collaborator the glyph cache depends on.
// Two implementations are provided:
//
//   - [XImage] renders glyphs with golang.org/x/image/font/opentype using
//     full hinting. It is the default backend.
//   - [GoText] reads glyph outlines through github.com/go-text/typesetting
//     and scan-converts them with golang.org/x/image/vector. It handles the
//     font formats go-text understands, including collections.
//
// Fonts are located by [FindFont]: an empty name or "goregular" resolves to
// the embedded Go Regular font, an existing file path is read directly, and
// anything else is looked up among the system fonts.
//
// Bitmap coordinates have Y growing down. Left and Top place the bitmap
// relative to the pen position on the baseline, Top measured upward.
package raster
