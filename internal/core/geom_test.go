package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"touching edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"touching bottom", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"one cell overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right exclusive", 30, 25, false},
		{"left of", 5, 15, false},
		{"below", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	cx, cy := r.Center()
	if cx != 20 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (20, 17)", cx, cy)
	}
}

func TestOverlaps(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name     string
		a, b     Shape
		expected bool
	}{
		{"circles apart", Circle(V(0, 0), 3), Circle(V(10, 0), 3), false},
		{"circles overlapping", Circle(V(0, 0), 6), Circle(V(10, 0), 6), true},
		{"circles touching", Circle(V(0, 0), 5), Circle(V(10, 0), 5), false},
		{"distance below radius sum", Circle(V(0, 0), 10), Circle(V(3, 0), 0), true},
		{"rects overlapping", BoxFromCorner(0, 0, 10, 10), BoxFromCorner(5, 5, 10, 10), true},
		{"rects sharing edge", BoxFromCorner(0, 0, 10, 10), BoxFromCorner(10, 0, 10, 10), false},
		{"circle inside rect", Circle(V(5, 5), 1), BoxFromCorner(0, 0, 10, 10), true},
		{"circle near rect corner", Circle(V(13, 13), 4), BoxFromCorner(0, 0, 10, 10), false},
		{"circle reaching rect side", Circle(V(12, 5), 3), BoxFromCorner(0, 0, 10, 10), true},
		{"nan center", Circle(V(nan, 0), 5), Circle(V(0, 0), 5), false},
		{"inf radius", Circle(V(0, 0), inf), Circle(V(100, 0), 1), false},
		{"nan rect size", Box(V(0, 0), nan, 1), BoxFromCorner(0, 0, 1, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.expected {
				t.Errorf("Overlaps(a, b) = %v, expected %v", got, tc.expected)
			}
			if got := Overlaps(tc.b, tc.a); got != tc.expected {
				t.Errorf("Overlaps(b, a) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(100, 50)
	if b.Width() != 100 || b.Height() != 50 {
		t.Fatalf("size = %vx%v, expected 100x50", b.Width(), b.Height())
	}
	if !b.ContainsPoint(V(0, 0)) || b.ContainsPoint(V(100, 10)) {
		t.Error("ContainsPoint should include the min edge and exclude the max edge")
	}
	if b.ContainsPoint(V(-5, 25)) || b.ContainsPoint(V(50, 50)) {
		t.Error("points outside the bounds were contained")
	}
	if V(3, 4).Len() != 5 {
		t.Errorf("Len() = %v, expected 5", V(3, 4).Len())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if ClampF(-5.5, 0, 10) != 0 || ClampF(15.5, 0, 10) != 10 {
		t.Error("ClampF should clip to the range")
	}
	if Min(5, 10) != 5 || Max(5, 10) != 10 || Abs(-5) != 5 {
		t.Error("Min/Max/Abs returned unexpected values")
	}
}
