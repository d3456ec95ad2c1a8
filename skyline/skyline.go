package skyline

import "fmt"

// Skyline is the contour of occupied space inside one packing surface,
// ordered from the top boundary (y = 0) to the bottom boundary (y = size).
type Skyline []Point

// Empty returns the skyline of an empty size x size surface.
func Empty(size int) Skyline {
	return Skyline{{X: 0, Y: 0}, {X: 0, Y: size}}
}

// Clone returns a copy of s that shares no storage with it.
func (s Skyline) Clone() Skyline {
	out := make(Skyline, len(s))
	copy(out, s)
	return out
}

// Normalize returns s with redundant points removed so that the contour
// alternates strictly between vertical and horizontal steps, starting with a
// vertical one. Points that would step backwards, extend a collinear run or
// duplicate the previous corner are merged or dropped.
//
// The result is a new slice; s is not modified.
func (s Skyline) Normalize() Skyline {
	if len(s) == 0 {
		return nil
	}

	out := make(Skyline, 1, len(s))
	out[0] = s[0]

	for _, p := range s[1:] {
		last := out[len(out)-1]

		if len(out)%2 == 1 {
			// Expecting a vertical step.
			switch {
			case p.X == last.X:
				if last.Y >= p.Y {
					continue
				}
				out = append(out, p)
			case p.Y == last.Y:
				// Horizontal run continues: move its end, or drop the
				// corner entirely if it collapses onto the previous one.
				if len(out) >= 2 && out[len(out)-2] == p {
					out = out[:len(out)-1]
				} else {
					out[len(out)-1] = p
				}
			}
			continue
		}

		// Expecting a horizontal step.
		switch {
		case p.X == last.X:
			out[len(out)-1] = p
		case p.Y == last.Y:
			out = append(out, p)
		}
	}

	return out
}

// Check verifies the skyline shape for a size x size surface: anchored at
// y = 0 and y = size, strictly alternating non-degenerate vertical and
// horizontal steps, every x within [0, size].
func (s Skyline) Check(size int) error {
	if len(s) < 2 {
		return &InvariantError{Index: len(s), Reason: "fewer than two points"}
	}
	if s[0].Y != 0 {
		return &InvariantError{Index: 0, Reason: "first point is not on the top boundary"}
	}
	if s[len(s)-1].Y != size {
		return &InvariantError{Index: len(s) - 1, Reason: "last point is not on the bottom boundary"}
	}
	for i, p := range s {
		if p.X < 0 || p.X > size {
			return &InvariantError{Index: i, Reason: "x outside surface"}
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		if i%2 == 1 {
			if p.X != prev.X || p.Y <= prev.Y {
				return &InvariantError{Index: i, Reason: "expected a downward vertical step"}
			}
		} else if p.Y != prev.Y || p.X == prev.X {
			return &InvariantError{Index: i, Reason: "expected a horizontal step"}
		}
	}
	return nil
}

// InvariantError describes a malformed skyline.
type InvariantError struct {
	Index  int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("skyline: invalid point %d: %s", e.Index, e.Reason)
}
