package core

import "math"

// Viewport maps world coordinates onto the cells of a Screen.
// Games simulate in a fixed world size so a terminal resize never changes
// the simulation, only how it is drawn.
type Viewport struct {
	World  Bounds
	Screen *Screen
	Top    int // Rows reserved above the playfield (HUD)
}

// NewViewport returns a viewport drawing world onto s below top HUD rows.
func NewViewport(world Bounds, s *Screen, top int) Viewport {
	return Viewport{World: world, Screen: s, Top: top}
}

func (v Viewport) rows() int {
	return Max(v.Screen.Height()-v.Top, 1)
}

// Cell returns the screen cell for a world point.
func (v Viewport) Cell(p Vec2) (int, int) {
	w, h := v.World.Width(), v.World.Height()
	if w <= 0 || h <= 0 || !p.Finite() {
		return -1, -1
	}
	x := int(math.Floor((p.X - v.World.MinX) / w * float64(v.Screen.Width())))
	y := int(math.Floor((p.Y-v.World.MinY)/h*float64(v.rows()))) + v.Top
	return x, y
}

// WorldAt returns the world point at the center of a screen cell.
func (v Viewport) WorldAt(x, y int) Vec2 {
	sw, sh := Max(v.Screen.Width(), 1), v.rows()
	return Vec2{
		X: v.World.MinX + (float64(x)+0.5)*v.World.Width()/float64(sw),
		Y: v.World.MinY + (float64(y-v.Top)+0.5)*v.World.Height()/float64(sh),
	}
}

// Plot draws a rune at a world point. Points outside the playfield are clipped.
func (v Viewport) Plot(p Vec2, r rune, c Color) {
	x, y := v.Cell(p)
	if y < v.Top {
		return
	}
	v.Screen.SetColor(x, y, r, c)
}

// Line draws a world-space segment with one sample per half cell.
func (v Viewport) Line(a, b Vec2, r rune, c Color) {
	w := v.World.Width() / float64(Max(v.Screen.Width(), 1))
	n := int(a.Dist(b)/(w/2)) + 1
	for i := 0; i <= n; i++ {
		v.Plot(a.Add(b.Sub(a).Scale(float64(i)/float64(n))), r, c)
	}
}

// Fill draws a rune over every cell covered by a shape's bounding box.
// Shapes smaller than a cell still occupy the cell under their center.
func (v Viewport) Fill(s Shape, r rune, c Color) {
	hw, hh := s.HalfW, s.HalfH
	if s.Kind == ShapeCircle {
		hw, hh = s.Radius, s.Radius
	}
	x0, y0 := v.Cell(Vec2{X: s.Center.X - hw, Y: s.Center.Y - hh})
	x1, y1 := v.Cell(Vec2{X: s.Center.X + hw, Y: s.Center.Y + hh})
	if x1 < x0 || y1 < y0 {
		return
	}
	for y := Max(y0, v.Top); y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v.Screen.SetColor(x, y, r, c)
		}
	}
}
