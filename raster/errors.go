package raster

import (
	"errors"
	"fmt"
)

// Sentinel errors for the raster package.
var (
	// ErrFontNotFound is returned when a font name cannot be resolved.
	ErrFontNotFound = errors.New("raster: font not found")

	// ErrGlyphUndefined is returned when the font has no glyph for a code point.
	ErrGlyphUndefined = errors.New("raster: glyph not defined in font")

	// ErrInvalidPixelHeight is returned for a non-positive pixel height.
	ErrInvalidPixelHeight = errors.New("raster: pixel height must be positive")

	// ErrForeignFont is returned when a Font from another backend is passed in.
	ErrForeignFont = errors.New("raster: font was not loaded by this rasterizer")
)

// RasterizationError reports a glyph that exists but could not be rendered.
type RasterizationError struct {
	Code   rune
	Font   string
	Reason string
	Err    error
}

func (e *RasterizationError) Error() string {
	msg := fmt.Sprintf("raster: cannot rasterize %U in %q: %s", e.Code, e.Font, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RasterizationError) Unwrap() error {
	return e.Err
}
