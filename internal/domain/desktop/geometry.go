package desktop

import "math"

// Point is a pointer position in viewport pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry is a window's position and size in viewport pixels
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Origin returns the top-left corner of the geometry
func (g Geometry) Origin() Point {
	return Point{X: g.X, Y: g.Y}
}

// Viewport describes the visible desktop area and the strip reserved for the taskbar
type Viewport struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	TaskbarHeight float64 `json:"taskbar_height"`
}

// Usable returns the height available to windows above the taskbar
func (v Viewport) Usable() float64 {
	return nonNegative(nonNegative(v.Height) - nonNegative(v.TaskbarHeight))
}

// Maximized returns the geometry a maximized window occupies
func (v Viewport) Maximized() Geometry {
	return Geometry{
		X:      0,
		Y:      0,
		Width:  nonNegative(v.Width),
		Height: v.Usable(),
	}
}

// Clamp snaps g into the legal position range for its size.
//
// x is limited to [0, Width-g.Width] and y to [0, Height-TaskbarHeight-g.Height].
// The lower bound is applied last, so a window larger than the viewport sticks
// to the top-left corner instead of being pushed off screen.
func (v Viewport) Clamp(g Geometry) Geometry {
	g = Sanitize(g)

	maxX := nonNegative(v.Width) - g.Width
	maxY := v.Usable() - g.Height

	if g.X > maxX {
		g.X = maxX
	}
	if g.Y > maxY {
		g.Y = maxY
	}
	if g.X < 0 {
		g.X = 0
	}
	if g.Y < 0 {
		g.Y = 0
	}
	return g
}

// Sanitize replaces non-finite coordinates with zero and non-finite or
// negative sizes with zero.
func Sanitize(g Geometry) Geometry {
	return Geometry{
		X:      finite(g.X),
		Y:      finite(g.Y),
		Width:  nonNegative(g.Width),
		Height: nonNegative(g.Height),
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegative(f float64) float64 {
	f = finite(f)
	if f < 0 {
		return 0
	}
	return f
}
