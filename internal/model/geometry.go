// Package model defines the window, screen, and geometry types shared by
// the detection backends and the panel engine.
package model

// Geometry is a rectangle in screen coordinates.
type Geometry struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// IsZero reports whether the geometry carries no information.
func (g Geometry) IsZero() bool {
	return g == Geometry{}
}

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.X && x < g.X+g.Width && y >= g.Y && y < g.Y+g.Height
}

// Right returns the x coordinate one past the rectangle's right edge.
func (g Geometry) Right() int {
	return g.X + g.Width
}

// Bottom returns the y coordinate one past the rectangle's bottom edge.
func (g Geometry) Bottom() int {
	return g.Y + g.Height
}

// ClampInto shifts the rectangle so it lies within bounds, preserving its
// size. Right/bottom overflow is corrected first, then the origin is pinned
// to the bounds origin, so a rectangle larger than bounds keeps its top-left
// visible.
func (g Geometry) ClampInto(bounds Geometry) Geometry {
	out := g
	if out.Right() > bounds.Right() {
		out.X = bounds.Right() - out.Width
	}
	if out.Bottom() > bounds.Bottom() {
		out.Y = bounds.Bottom() - out.Height
	}
	if out.X < bounds.X {
		out.X = bounds.X
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	}
	return out
}

// Clamp bounds v to the range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
