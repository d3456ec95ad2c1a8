// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpusurface backs atlas pages with GPU textures.
//
// [Allocator] implements atlas.SurfaceAllocator on top of a
// gpucontext.TextureCreator, so a glyph cache can upload straight into
// textures owned by any gogpu renderer:
//
//	alloc := gpusurface.New(drawer.TextureCreator())
//	cache, err := glyphcache.New(cfg, raster.NewXImage(), alloc)
//
// Pages are created as transparent RGBA8 textures. Glyph coverage is expanded
// to RGBA on upload, either as white with straight alpha or premultiplied.
// Regions are written with gpucontext.TextureRegionUpdater when the texture
// supports it. Otherwise the allocator keeps a CPU copy of the page and
// re-uploads it whole through gpucontext.TextureUpdater.
package gpusurface
