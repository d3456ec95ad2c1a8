package skyline

import "fmt"

// Point is an integer position on a packing surface.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is a placed rectangle: top-left corner plus size.
type Rect struct {
	X, Y          int
	Width, Height int
}

// IsValid returns true if the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps returns true if r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Within returns true if r lies entirely inside [0, size) x [0, size).
func (r Rect) Within(size int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= size && r.Y+r.Height <= size
}

// Area returns the number of pixels covered by r.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Placement is the result of fitting a rectangle into a surface.
type Placement struct {
	// Position is the top-left corner of the placed rectangle.
	Position Point

	// Rotated is true if the rectangle was packed with width and
	// height swapped relative to the request.
	Rotated bool
}

// Rect returns the region covered by a width x height request placed at p,
// taking rotation into account.
func (p Placement) Rect(width, height int) Rect {
	if p.Rotated {
		width, height = height, width
	}
	return Rect{X: p.Position.X, Y: p.Position.Y, Width: width, Height: height}
}
