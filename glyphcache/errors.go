package glyphcache

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyphcache package.
var (
	// ErrNilRasterizer is returned when New is called without a rasterizer.
	ErrNilRasterizer = errors.New("glyphcache: nil rasterizer")

	// ErrNilAllocator is returned when New is called without a surface allocator.
	ErrNilAllocator = errors.New("glyphcache: nil surface allocator")

	// ErrFallbackUnavailable is returned by New when the fallback glyph cannot
	// be loaded.
	ErrFallbackUnavailable = errors.New("glyphcache: fallback glyph unavailable")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphcache: invalid config." + e.Field + ": " + e.Reason
}

// OverflowError is returned when a padded glyph is larger than a page.
type OverflowError struct {
	Code          rune
	Width, Height int
	PageSize      int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("glyphcache: %U needs %dx%d pixels, page is %dx%d",
		e.Code, e.Width, e.Height, e.PageSize, e.PageSize)
}

// PageError reports a failure of an atlas page surface: the allocator could
// not create it (Op "create") or rejected a glyph upload into it (Op
// "upload"). Space reserved for a failed upload is not reclaimed, so the
// cache treats both as fatal and Get panics with it.
type PageError struct {
	Index int
	Op    string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("glyphcache: %s page %d: %v", e.Op, e.Index, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
