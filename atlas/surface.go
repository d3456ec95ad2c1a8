package atlas

// Surface is an opaque handle to one square backing surface, such as a GPU
// texture. Implementations are created by a SurfaceAllocator.
type Surface interface {
	// ID identifies the surface within its allocator (e.g. a texture name).
	ID() uint64

	// Size returns the side length of the surface in pixels.
	Size() int
}

// SurfaceAllocator creates backing surfaces and uploads pixel data into them.
type SurfaceAllocator interface {
	// CreateSurface allocates a new, zero-filled size x size surface.
	CreateSurface(size int) (Surface, error)

	// UploadRegion copies a width x height block of 8-bit coverage values
	// into s with its top-left corner at (x, y). pixels is row-major and
	// tightly packed: len(pixels) == width*height.
	UploadRegion(s Surface, x, y, width, height int, pixels []byte) error
}

// CheckRegion validates an upload of width x height tightly packed pixels at
// (x, y) into a size x size surface. SurfaceAllocator implementations share
// it so every backend applies the same bounds and length rules.
func CheckRegion(size, x, y, width, height int, pixels []byte) error {
	if width < 0 || height < 0 || x < 0 || y < 0 || x+width > size || y+height > size {
		return regionError(ErrRegionOutOfBounds, x, y, width, height, size)
	}
	if len(pixels) != width*height {
		return regionError(ErrPixelCountMismatch, x, y, width, height, size)
	}
	return nil
}
