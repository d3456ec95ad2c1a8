package skyline

// Packer places rectangles into one size x size surface using a skyline
// heuristic, optionally rotating them by 90 degrees.
type Packer struct {
	size          int
	allowRotation bool
	skyline       Skyline

	// Tracking for utilization
	placed   int
	usedArea int
}

// NewPacker creates a packer for an empty size x size surface.
func NewPacker(size int, allowRotation bool) *Packer {
	return &Packer{
		size:          size,
		allowRotation: allowRotation,
		skyline:       Empty(size),
	}
}

// Place finds room for a width x height rectangle and reserves it.
// It returns false if the rectangle fits nowhere in either orientation;
// this is the normal signal that the surface is full for this request.
//
// The algorithm:
//  1. Find the anchor minimizing the trailing extent x + width, and,
//     if rotation is allowed, the best anchor for the rotated rectangle.
//  2. Prefer the unrotated fit unless the rotated one ends strictly
//     further left, or is the only one that fits.
//  3. Insert the rectangle's corners into the skyline and normalize it.
func (p *Packer) Place(width, height int) (Placement, bool) {
	if width <= 0 || height <= 0 {
		return Placement{}, false
	}

	last := len(p.skyline) - 1
	fit := p.fit(width, height)
	fitRotated := last
	if p.allowRotation {
		fitRotated = p.fit(height, width)
	}

	rotated := false
	switch {
	case fit >= last && fitRotated >= last:
		return Placement{}, false
	case fit >= last:
		fit, rotated = fitRotated, true
	case fitRotated < last:
		right := p.skyline[fit].X + width
		rightRotated := p.skyline[fitRotated].X + height
		if rightRotated < right {
			fit, rotated = fitRotated, true
		}
	}

	if rotated {
		width, height = height, width
	}

	topLeft := p.skyline[fit]
	bottomRight := topLeft.Add(Point{X: width, Y: height})
	topRight := Point{X: bottomRight.X, Y: topLeft.Y}
	bottomLeft := Point{X: p.skyline[p.firstBelow(bottomRight.Y)].X, Y: bottomRight.Y}

	next := make(Skyline, 0, len(p.skyline)+2)
	next = append(next, p.skyline[:fit]...)
	next = append(next, topRight, bottomRight, bottomLeft)
	next = append(next, p.skyline[fit+1:]...)
	p.skyline = next.Normalize()

	p.placed++
	p.usedArea += width * height

	return Placement{Position: topLeft, Rotated: rotated}, true
}

// fit returns the skyline index of the best anchor for a width x height
// rectangle, or len(skyline) if there is none. The best anchor is the one
// with the smallest trailing extent; the first one wins ties.
func (p *Packer) fit(width, height int) int {
	right := p.size + 1
	idx := len(p.skyline)

	for i, anchor := range p.skyline {
		end := anchor.Add(Point{X: width, Y: height})
		if end.X > p.size || end.Y > p.size {
			continue
		}
		if !p.clear(i, end.Y) {
			continue
		}
		if end.X < right {
			right = end.X
			idx = i
		}
	}
	return idx
}

// clear reports whether no skyline point after anchor i, and above bottom,
// reaches further right than the anchor.
func (p *Packer) clear(i, bottom int) bool {
	x := p.skyline[i].X
	for _, q := range p.skyline[i+1:] {
		if q.Y >= bottom {
			return true
		}
		if q.X > x {
			return false
		}
	}
	return true
}

// firstBelow returns the index of the first skyline point at or below y.
// The last point always qualifies since it sits on the bottom boundary.
func (p *Packer) firstBelow(y int) int {
	for i, q := range p.skyline {
		if q.Y >= y {
			return i
		}
	}
	return len(p.skyline) - 1
}

// CanFit returns true if a width x height rectangle could be placed now,
// in either allowed orientation. It does not modify the packer.
func (p *Packer) CanFit(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	last := len(p.skyline) - 1
	if p.fit(width, height) < last {
		return true
	}
	return p.allowRotation && p.fit(height, width) < last
}

// Reset clears all placements, allowing the packer to be reused.
func (p *Packer) Reset() {
	p.skyline = Empty(p.size)
	p.placed = 0
	p.usedArea = 0
}

// Size returns the surface side length.
func (p *Packer) Size() int {
	return p.size
}

// AllowRotation reports whether rectangles may be rotated by 90 degrees.
func (p *Packer) AllowRotation() bool {
	return p.allowRotation
}

// Skyline returns a copy of the current contour.
func (p *Packer) Skyline() Skyline {
	return p.skyline.Clone()
}

// Placed returns the number of successful placements.
func (p *Packer) Placed() int {
	return p.placed
}

// UsedArea returns the total area of placed rectangles.
func (p *Packer) UsedArea() int {
	return p.usedArea
}

// Utilization returns the fraction of the surface covered by placed
// rectangles (0.0 to 1.0).
func (p *Packer) Utilization() float64 {
	if p.size <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.size*p.size)
}
