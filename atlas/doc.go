// Package atlas binds skyline packers to backing surfaces.
//
// A Page is one fixed-size square surface (for example a GPU texture) plus
// the skyline packer that tracks its free space. Surfaces come from a
// SurfaceAllocator supplied by the host application; AlphaAllocator is an
// in-memory implementation backed by *image.Alpha that is useful for tests,
// offline atlas generation and CPU renderers.
package atlas
