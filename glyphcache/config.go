package glyphcache

import "unicode/utf8"

// Config holds cache configuration.
type Config struct {
	// FontName is resolved by the rasterizer. Empty selects its default font.
	FontName string

	// PixelHeight is the font size in pixels per em.
	// Default: 32
	PixelHeight int

	// PageSize is the side length of each square atlas page in pixels.
	// Default: 512
	PageSize int

	// AllowRotation lets the packer store glyphs rotated by 90 degrees.
	// Default: false
	AllowRotation bool

	// LineHeight overrides the baseline-to-baseline distance in pixels.
	// Zero uses the rasterizer's line metric.
	LineHeight float32

	// Fallback replaces glyphs that cannot be loaded.
	// Default: ' '
	Fallback rune
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		PixelHeight: 32,
		PageSize:    512,
		Fallback:    ' ',
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PixelHeight < 1 {
		return &ConfigError{Field: "PixelHeight", Reason: "must be positive"}
	}
	if c.PageSize < 3 {
		return &ConfigError{Field: "PageSize", Reason: "must be at least 3"}
	}
	if c.LineHeight < 0 {
		return &ConfigError{Field: "LineHeight", Reason: "must be non-negative"}
	}
	if !utf8.ValidRune(c.Fallback) {
		return &ConfigError{Field: "Fallback", Reason: "must be a valid code point"}
	}
	if c.Fallback == '\n' {
		return &ConfigError{Field: "Fallback", Reason: "must not be a newline"}
	}
	return nil
}
