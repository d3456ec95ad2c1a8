package atlas

import (
	"image"
	"sort"
	"sync"
)

// AlphaAllocator creates in-memory surfaces backed by *image.Alpha.
//
// AlphaAllocator is safe for concurrent use, so pages can be exported from a
// goroutine other than the one filling them.
type AlphaAllocator struct {
	mu       sync.RWMutex
	surfaces map[uint64]*alphaSurface
	nextID   uint64
}

type alphaSurface struct {
	id  uint64
	img *image.Alpha
}

func (s *alphaSurface) ID() uint64 { return s.id }
func (s *alphaSurface) Size() int  { return s.img.Rect.Dx() }

// NewAlphaAllocator creates an empty allocator. Surface IDs start at 1.
func NewAlphaAllocator() *AlphaAllocator {
	return &AlphaAllocator{
		surfaces: make(map[uint64]*alphaSurface),
	}
}

// CreateSurface implements SurfaceAllocator.
func (a *AlphaAllocator) CreateSurface(size int) (Surface, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	s := &alphaSurface{
		id:  a.nextID,
		img: image.NewAlpha(image.Rect(0, 0, size, size)),
	}
	a.surfaces[s.id] = s
	return s, nil
}

// UploadRegion implements SurfaceAllocator.
func (a *AlphaAllocator) UploadRegion(s Surface, x, y, width, height int, pixels []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	as, err := a.lookup(s)
	if err != nil {
		return err
	}
	if err := CheckRegion(as.img.Rect.Dx(), x, y, width, height, pixels); err != nil {
		return err
	}

	for row := 0; row < height; row++ {
		dst := as.img.PixOffset(x, y+row)
		copy(as.img.Pix[dst:dst+width], pixels[row*width:(row+1)*width])
	}
	return nil
}

// Image returns the pixels of s. The returned image is shared with the
// allocator and must not be modified while uploads may be in progress.
func (a *AlphaAllocator) Image(s Surface) (*image.Alpha, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	as, err := a.lookup(s)
	if err != nil {
		return nil, err
	}
	return as.img, nil
}

// Surfaces returns all surfaces in creation order.
func (a *AlphaAllocator) Surfaces() []Surface {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Surface, 0, len(a.surfaces))
	for _, s := range a.surfaces {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// MemoryUsage returns the total pixel memory held by all surfaces in bytes.
func (a *AlphaAllocator) MemoryUsage() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var total int64
	for _, s := range a.surfaces {
		total += int64(len(s.img.Pix))
	}
	return total
}

// lookup resolves s to a surface owned by a. Must be called with a.mu held.
func (a *AlphaAllocator) lookup(s Surface) (*alphaSurface, error) {
	if s == nil {
		return nil, ErrUnknownSurface
	}
	as, ok := a.surfaces[s.ID()]
	if !ok || as != s {
		return nil, ErrUnknownSurface
	}
	return as, nil
}
