// Package skyline implements a skyline 2D bin packer for one fixed-size
// square surface.
//
// The packer keeps the contour of occupied space as an ordered list of
// points (the skyline). Each placement searches the skyline for the anchor
// point that leaves the smallest trailing extent, optionally trying the
// rectangle rotated by 90 degrees, then inserts the rectangle's corners into
// the contour and normalizes it.
//
// # Skyline Shape
//
// The skyline starts at y = 0 and ends at y = size. Between the two ends
// the contour alternates between vertical steps (same x, y increasing) and
// horizontal steps (same y, x changing), beginning with a vertical step.
// Everything to the left of the contour is occupied:
//
//	(32,0)
//	  |
//	(32,32)----(0,32)
//	             |
//	           (0,128)
//
// describes a 128x128 page whose top-left 32x32 square is used.
//
// # Usage
//
//	p := skyline.NewPacker(512, false)
//	pl, ok := p.Place(30, 42)
//	if !ok {
//	    // page is full for this rectangle: allocate a new one
//	}
//
// A Packer is not safe for concurrent use.
package skyline
