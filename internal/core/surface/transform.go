package surface

import "math"

// Zoom bounds.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// Transform maps world coordinates to screen coordinates:
// screen = world*Scale + (X, Y).
type Transform struct {
	Scale float64
	X, Y  float64
}

// Identity is the unit transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps a world point to the screen.
func (t Transform) Apply(wx, wy float64) (float64, float64) {
	return wx*t.Scale + t.X, wy*t.Scale + t.Y
}

// Invert maps a screen point back into the world.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.Scale, (sy - t.Y) / t.Scale
}

// ZoomAt scales by factor while keeping the world point under the screen
// point (cx, cy) fixed. The result is clamped to [MinScale, MaxScale].
func (t Transform) ZoomAt(factor, cx, cy float64) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return t
	}
	wx, wy := t.Invert(cx, cy)
	scale := clampScale(t.Scale * factor)
	return Transform{
		Scale: scale,
		X:     cx - wx*scale,
		Y:     cy - wy*scale,
	}
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}
