// Package core provides the shared primitives of the arcade: geometry and
// collision, input snapshots, frame context, the screen buffer and the
// runtime configuration handed to games. It depends on no UI library so game
// logic stays pure and testable.
package core

// Rect is an integer axis-aligned box on the cell grid.
// Grid games and the screen buffer use it; world-space games use Shape.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Bounds is a float rectangle in world coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds returns bounds covering [0,w) x [0,h).
func NewBounds(w, h float64) Bounds {
	return Bounds{MaxX: w, MaxY: h}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// ContainsPoint reports whether p lies inside the bounds.
func (b Bounds) ContainsPoint(p Vec2) bool {
	return p.X >= b.MinX && p.X < b.MaxX && p.Y >= b.MinY && p.Y < b.MaxY
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
