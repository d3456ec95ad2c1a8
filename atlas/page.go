package atlas

import (
	"fmt"

	"github.com/gogpu/glyphatlas/skyline"
)

// Page is one fixed-size atlas surface together with the packer that
// tracks its free space. Pages are never resized.
type Page struct {
	index   int
	size    int
	surface Surface
	alloc   SurfaceAllocator
	packer  *skyline.Packer
}

// NewPage allocates a size x size surface from alloc and pairs it with an
// empty packer of the same size. index is the page's position in its owner's
// page list.
func NewPage(index, size int, alloc SurfaceAllocator, allowRotation bool) (*Page, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if alloc == nil {
		return nil, ErrNilAllocator
	}

	s, err := alloc.CreateSurface(size)
	if err != nil {
		return nil, fmt.Errorf("atlas: create %dx%d surface for page %d: %w", size, size, index, err)
	}

	return &Page{
		index:   index,
		size:    size,
		surface: s,
		alloc:   alloc,
		packer:  skyline.NewPacker(size, allowRotation),
	}, nil
}

// TryPlace reserves room for a width x height rectangle. On success it
// returns the placement and the page's surface so the caller can upload
// into it; false means the page has no room for this rectangle.
func (p *Page) TryPlace(width, height int) (skyline.Placement, Surface, bool) {
	pl, ok := p.packer.Place(width, height)
	if !ok {
		return skyline.Placement{}, nil, false
	}
	return pl, p.surface, true
}

// Upload copies tightly packed coverage values into the page's surface.
func (p *Page) Upload(x, y, width, height int, pixels []byte) error {
	return p.alloc.UploadRegion(p.surface, x, y, width, height, pixels)
}

// Index returns the page's position in its owner's page list.
func (p *Page) Index() int {
	return p.index
}

// Size returns the side length of the page in pixels.
func (p *Page) Size() int {
	return p.size
}

// Surface returns the page's backing surface handle.
func (p *Page) Surface() Surface {
	return p.surface
}

// Placed returns the number of rectangles placed in the page.
func (p *Page) Placed() int {
	return p.packer.Placed()
}

// Utilization returns the fraction of the page covered by placements.
func (p *Page) Utilization() float64 {
	return p.packer.Utilization()
}

// Skyline returns a copy of the page's current contour.
func (p *Page) Skyline() skyline.Skyline {
	return p.packer.Skyline()
}

// PageInfo contains information about a single page.
type PageInfo struct {
	Index       int
	SurfaceID   uint64
	Size        int
	Placed      int
	Utilization float64
}

// Info returns a snapshot of the page's statistics.
func (p *Page) Info() PageInfo {
	return PageInfo{
		Index:       p.index,
		SurfaceID:   p.surface.ID(),
		Size:        p.size,
		Placed:      p.packer.Placed(),
		Utilization: p.packer.Utilization(),
	}
}
