package core

import "math"

// Vec2 is a point or velocity in world coordinates.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Finite reports whether both components are finite numbers.
func (v Vec2) Finite() bool {
	return finite(v.X) && finite(v.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ShapeKind selects the collision primitive of a Shape.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is a collision primitive centered on Center.
// Circles use Radius; rects use the half extents HalfW and HalfH.
type Shape struct {
	Kind   ShapeKind
	Center Vec2
	Radius float64
	HalfW  float64
	HalfH  float64
}

// Circle returns a circular shape.
func Circle(center Vec2, radius float64) Shape {
	return Shape{Kind: ShapeCircle, Center: center, Radius: radius}
}

// Box returns an axis-aligned rectangle given its center and half extents.
func Box(center Vec2, halfW, halfH float64) Shape {
	return Shape{Kind: ShapeRect, Center: center, HalfW: halfW, HalfH: halfH}
}

// BoxFromCorner returns an axis-aligned rectangle from its top-left corner and size.
func BoxFromCorner(x, y, w, h float64) Shape {
	return Box(Vec2{X: x + w/2, Y: y + h/2}, w/2, h/2)
}

// Finite reports whether every number describing the shape is finite.
func (s Shape) Finite() bool {
	if !s.Center.Finite() {
		return false
	}
	if s.Kind == ShapeCircle {
		return finite(s.Radius)
	}
	return finite(s.HalfW) && finite(s.HalfH)
}

// Overlaps reports whether two shapes intersect.
//
// Circle-circle compares the center distance with the sum of radii; rect-rect
// is the strict axis-aligned test, so rects sharing only an edge do not
// overlap. Mixed pairs use the closest point of the rect to the circle center.
// The result does not depend on argument order, and shapes with non-finite
// coordinates never overlap anything.
func Overlaps(a, b Shape) bool {
	if !a.Finite() || !b.Finite() {
		return false
	}

	switch {
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		return a.Center.Dist(b.Center) < a.Radius+b.Radius
	case a.Kind == ShapeRect && b.Kind == ShapeRect:
		return math.Abs(a.Center.X-b.Center.X) < a.HalfW+b.HalfW &&
			math.Abs(a.Center.Y-b.Center.Y) < a.HalfH+b.HalfH
	case a.Kind == ShapeCircle:
		return circleRect(a, b)
	default:
		return circleRect(b, a)
	}
}

// circleRect tests a circle against a rect via the rect's closest point.
func circleRect(c, r Shape) bool {
	nearX := ClampF(c.Center.X, r.Center.X-r.HalfW, r.Center.X+r.HalfW)
	nearY := ClampF(c.Center.Y, r.Center.Y-r.HalfH, r.Center.Y+r.HalfH)
	return math.Hypot(c.Center.X-nearX, c.Center.Y-nearY) < c.Radius
}
