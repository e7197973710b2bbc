package graph

import (
	"fmt"
	"math"
	"strings"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Contains reports whether p lies inside r, bounds inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Viewport describes what the consumer currently shows.
//
// Every field is optional. Bounds exist only when both Width and Height are
// set (X and Y default to 0). A missing Zoom means neutral zoom.
type Viewport struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Zoom   *float64 `json:"zoom,omitempty"`
}

// NewViewport returns a viewport with bounds and zoom set.
func NewViewport(x, y, width, height, zoom float64) *Viewport {
	return &Viewport{X: &x, Y: &y, Width: &width, Height: &height, Zoom: &zoom}
}

// Bounds returns the viewport rectangle, or false if the viewport has none.
// A nil viewport has no bounds.
func (v *Viewport) Bounds() (Rect, bool) {
	if v == nil || v.Width == nil || v.Height == nil {
		return Rect{}, false
	}
	r := Rect{Width: *v.Width, Height: *v.Height}
	if v.X != nil {
		r.X = *v.X
	}
	if v.Y != nil {
		r.Y = *v.Y
	}
	return r, true
}

// ZoomLevel returns the zoom factor, or false if the viewport has none.
func (v *Viewport) ZoomLevel() (float64, bool) {
	if v == nil || v.Zoom == nil {
		return 0, false
	}
	return *v.Zoom, true
}

// Pan returns a copy moved by (dx, dy). Missing X/Y are treated as 0.
func (v *Viewport) Pan(dx, dy float64) *Viewport {
	cp := v.clone()
	x, y := dx, dy
	if cp.X != nil {
		x += *cp.X
	}
	if cp.Y != nil {
		y += *cp.Y
	}
	cp.X, cp.Y = &x, &y
	return cp
}

// WithZoom returns a copy with the zoom factor set to z.
func (v *Viewport) WithZoom(z float64) *Viewport {
	cp := v.clone()
	cp.Zoom = &z
	return cp
}

// Validate rejects non-finite values and negative sizes.
func (v *Viewport) Validate() error {
	if v == nil {
		return nil
	}
	for name, f := range map[string]*float64{"x": v.X, "y": v.Y, "width": v.Width, "height": v.Height, "zoom": v.Zoom} {
		if f != nil && (math.IsNaN(*f) || math.IsInf(*f, 0)) {
			return fmt.Errorf("viewport %s is not finite", name)
		}
	}
	if v.Width != nil && *v.Width < 0 {
		return fmt.Errorf("viewport width is negative")
	}
	if v.Height != nil && *v.Height < 0 {
		return fmt.Errorf("viewport height is negative")
	}
	if v.Zoom != nil && *v.Zoom <= 0 {
		return fmt.Errorf("viewport zoom must be positive")
	}
	return nil
}

// String renders the set fields, e.g. "x=0 y=0 w=150 h=150 zoom=1".
func (v *Viewport) String() string {
	if v == nil {
		return "none"
	}
	var parts []string
	add := func(name string, f *float64) {
		if f != nil {
			parts = append(parts, fmt.Sprintf("%s=%g", name, *f))
		}
	}
	add("x", v.X)
	add("y", v.Y)
	add("w", v.Width)
	add("h", v.Height)
	add("zoom", v.Zoom)
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

func (v *Viewport) clone() *Viewport {
	if v == nil {
		return &Viewport{}
	}
	cp := &Viewport{}
	cp.X = copyFloat(v.X)
	cp.Y = copyFloat(v.Y)
	cp.Width = copyFloat(v.Width)
	cp.Height = copyFloat(v.Height)
	cp.Zoom = copyFloat(v.Zoom)
	return cp
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
