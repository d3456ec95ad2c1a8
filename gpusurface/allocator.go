// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpusurface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glyphatlas/atlas"
)

// bytesPerPixel is the size of one RGBA8 texel.
const bytesPerPixel = 4

var (
	// ErrNilCreator is returned when surfaces are created without a texture creator.
	ErrNilCreator = errors.New("gpusurface: nil texture creator")

	// ErrTextureSizeMismatch is returned when a created texture has the wrong size.
	ErrTextureSizeMismatch = errors.New("gpusurface: texture size does not match request")

	// ErrNotUpdatable is returned when a texture supports neither region nor
	// whole-texture updates.
	ErrNotUpdatable = errors.New("gpusurface: texture cannot be updated")
)

// Expansion selects how coverage bytes become RGBA texels.
type Expansion uint8

const (
	// ExpandWhiteAlpha writes (255, 255, 255, a).
	ExpandWhiteAlpha Expansion = iota

	// ExpandPremultiplied writes (a, a, a, a).
	ExpandPremultiplied
)

// String returns a human-readable name for the expansion.
func (e Expansion) String() string {
	switch e {
	case ExpandWhiteAlpha:
		return "WhiteAlpha"
	case ExpandPremultiplied:
		return "Premultiplied"
	default:
		return fmt.Sprintf("Unknown(%d)", e)
	}
}

// expand converts coverage bytes to RGBA8 texels.
func (e Expansion) expand(dst, coverage []byte) {
	for i, a := range coverage {
		px := dst[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
		if e == ExpandPremultiplied {
			px[0], px[1], px[2] = a, a, a
		} else {
			px[0], px[1], px[2] = 0xff, 0xff, 0xff
		}
		px[3] = a
	}
}

// Descriptor describes the texture behind a surface.
type Descriptor struct {
	ID      uint64
	Size    gputypes.Extent3D
	Format  gputypes.TextureFormat
	Usage   gputypes.TextureUsage
	Partial bool // region updates supported
}

// Surface is an atlas surface backed by a GPU texture.
type Surface struct {
	id      uint64
	size    int
	texture gpucontext.Texture

	// shadow mirrors the texture for whole-texture updates, nil when the
	// texture accepts region updates.
	shadow []byte
}

// ID implements atlas.Surface.
func (s *Surface) ID() uint64 { return s.id }

// Size implements atlas.Surface.
func (s *Surface) Size() int { return s.size }

// Texture returns the GPU texture holding the surface pixels.
func (s *Surface) Texture() gpucontext.Texture { return s.texture }

// Allocator creates atlas surfaces as GPU textures.
// It is safe for concurrent use.
type Allocator struct {
	mu        sync.Mutex
	creator   gpucontext.TextureCreator
	expansion Expansion
	nextID    uint64
	surfaces  map[uint64]*Surface
	uploads   uint64
}

// New returns an allocator that expands coverage to white with straight alpha.
func New(creator gpucontext.TextureCreator) *Allocator {
	return NewWithExpansion(creator, ExpandWhiteAlpha)
}

// NewWithExpansion returns an allocator using the given texel expansion.
func NewWithExpansion(creator gpucontext.TextureCreator, e Expansion) *Allocator {
	return &Allocator{
		creator:   creator,
		expansion: e,
		surfaces:  make(map[uint64]*Surface),
	}
}

// CreateSurface implements atlas.SurfaceAllocator. The texture starts fully
// transparent.
func (a *Allocator) CreateSurface(size int) (atlas.Surface, error) {
	if size <= 0 {
		return nil, atlas.ErrInvalidSize
	}
	if a.creator == nil {
		return nil, ErrNilCreator
	}

	data := make([]byte, size*size*bytesPerPixel)
	tex, err := a.creator.NewTextureFromRGBA(size, size, data)
	if err != nil {
		return nil, fmt.Errorf("gpusurface: NewTextureFromRGBA failed: %w", err)
	}
	if tex.Width() != size || tex.Height() != size {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrTextureSizeMismatch, tex.Width(), tex.Height(), size, size)
	}

	s := &Surface{size: size, texture: tex}
	if _, ok := tex.(gpucontext.TextureRegionUpdater); !ok {
		if _, ok := tex.(gpucontext.TextureUpdater); !ok {
			return nil, ErrNotUpdatable
		}
		s.shadow = make([]byte, len(data))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	s.id = a.nextID
	a.surfaces[s.id] = s
	return s, nil
}

// UploadRegion implements atlas.SurfaceAllocator.
func (a *Allocator) UploadRegion(as atlas.Surface, x, y, width, height int, pixels []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.lookup(as)
	if err != nil {
		return err
	}
	if err := atlas.CheckRegion(s.size, x, y, width, height, pixels); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}

	if s.shadow == nil {
		rgba := make([]byte, len(pixels)*bytesPerPixel)
		a.expansion.expand(rgba, pixels)
		updater := s.texture.(gpucontext.TextureRegionUpdater)
		if err := updater.UpdateRegion(x, y, width, height, rgba); err != nil {
			return fmt.Errorf("gpusurface: region update failed: %w", err)
		}
	} else {
		stride := s.size * bytesPerPixel
		for row := range height {
			off := (y+row)*stride + x*bytesPerPixel
			a.expansion.expand(s.shadow[off:off+width*bytesPerPixel], pixels[row*width:(row+1)*width])
		}
		updater := s.texture.(gpucontext.TextureUpdater)
		if err := updater.UpdateData(s.shadow); err != nil {
			return fmt.Errorf("gpusurface: texture update failed: %w", err)
		}
	}
	a.uploads++
	return nil
}

// Texture returns the GPU texture behind s.
func (a *Allocator) Texture(s atlas.Surface) (gpucontext.Texture, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	gs, err := a.lookup(s)
	if err != nil {
		return nil, err
	}
	return gs.texture, nil
}

// Describe returns the texture descriptor of s.
func (a *Allocator) Describe(s atlas.Surface) (Descriptor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	gs, err := a.lookup(s)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		ID:      gs.id,
		Size:    gputypes.Extent3D{Width: uint32(gs.size), Height: uint32(gs.size), DepthOrArrayLayers: 1},
		Format:  gputypes.TextureFormatRGBA8Unorm,
		Usage:   gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
		Partial: gs.shadow == nil,
	}, nil
}

// Surfaces returns all surfaces in creation order.
func (a *Allocator) Surfaces() []*Surface {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Surface, 0, len(a.surfaces))
	for _, s := range a.surfaces {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Uploads returns the number of non-empty region uploads performed.
func (a *Allocator) Uploads() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uploads
}

// MemoryUsage returns the texture memory held by all surfaces in bytes.
func (a *Allocator) MemoryUsage() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var total int64
	for _, s := range a.surfaces {
		total += int64(s.size) * int64(s.size) * bytesPerPixel
	}
	return total
}

// lookup resolves s to a surface owned by a. Must be called with a.mu held.
func (a *Allocator) lookup(s atlas.Surface) (*Surface, error) {
	gs, ok := s.(*Surface)
	if !ok || gs == nil || a.surfaces[gs.id] != gs {
		return nil, atlas.ErrUnknownSurface
	}
	return gs, nil
}
