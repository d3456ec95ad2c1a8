package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas package.
var (
	// ErrInvalidSize is returned when a surface or page size is not positive.
	ErrInvalidSize = errors.New("atlas: surface size must be positive")

	// ErrNilAllocator is returned when a page is created without an allocator.
	ErrNilAllocator = errors.New("atlas: nil surface allocator")

	// ErrUnknownSurface is returned when a surface was not created by the allocator.
	ErrUnknownSurface = errors.New("atlas: surface not owned by allocator")

	// ErrRegionOutOfBounds is returned when an upload region is outside the surface.
	ErrRegionOutOfBounds = errors.New("atlas: region is outside surface bounds")

	// ErrPixelCountMismatch is returned when pixel data does not match the region size.
	ErrPixelCountMismatch = errors.New("atlas: pixel data does not match region size")
)

// regionError reports the offending region together with the sentinel.
func regionError(err error, x, y, w, h, size int) error {
	return fmt.Errorf("%w: region (%d,%d %dx%d), surface %dx%d", err, x, y, w, h, size, size)
}
