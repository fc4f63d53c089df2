// Package unit provides the fixed-point geometry types shared by every
// component of the layout core: the layout unit itself, explicit rational
// ratios, and the axis-aligned rectangles the quadtree and draw-order list
// index.
package unit

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// UnitsPerPixel is the fixed-point denomination: one pixel equals this many
// layout units. It is 2^6, the fractional-bit count of fixed.Int26_6, on
// which Unit is built.
const UnitsPerPixel = 64

// Unit is a signed integer in the fixed sub-pixel denomination described in
// spec §3. It is defined directly in terms of golang.org/x/image/math/fixed's
// 26.6 fixed-point type so the core inherits a well-tested fixed-point
// representation instead of hand-rolling one; UnitsPerPixel (64 = 2^6)
// matches fixed.Int26_6's fractional-bit count exactly.
type Unit fixed.Int26_6

// FromPixels converts a whole-pixel count to layout units.
func FromPixels(px int32) Unit {
	return Unit(fixed.I(int(px)))
}

// Pixels rounds to the nearest whole-pixel count (halves round up).
func (u Unit) Pixels() int32 {
	return int32(fixed.Int26_6(u).Round())
}

func (u Unit) String() string {
	return fixed.Int26_6(u).String()
}

// Ratio is an explicit rational number used wherever the spec calls for one
// (e.g. aspect ratios) instead of a float, to avoid float drift across the
// deterministic, single-pass core.
type Ratio struct {
	Num int32
	Den int32
}

// Apply scales u by the ratio, rounding toward zero. Den == 0 is a caller
// error (the zero Ratio is not a valid ratio) and returns u unchanged.
func (r Ratio) Apply(u Unit) Unit {
	if r.Den == 0 {
		return u
	}
	return Unit(int64(u) * int64(r.Num) / int64(r.Den))
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Point is a 2D point in layout units.
type Point struct {
	X, Y Unit
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Sub returns p translated by -d.
func (p Point) Sub(d Point) Point {
	return Point{p.X - d.X, p.Y - d.Y}
}

// Rect is an inclusive-origin, exclusive-extent axis-aligned rectangle in
// layout units, as required by the quadtree contract (spec §4.3). W and H
// are non-negative.
type Rect struct {
	X, Y Unit
	W, H Unit
}

// RectAt builds a Rect of size (w, h) with its top-left corner at origin.
func RectAt(origin Point, w, h Unit) Rect {
	return Rect{X: origin.X, Y: origin.Y, W: w, H: h}
}

// MaxX is the exclusive right edge.
func (r Rect) MaxX() Unit { return r.X + r.W }

// MaxY is the exclusive bottom edge.
func (r Rect) MaxY() Unit { return r.Y + r.H }

// Origin is the rect's top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Intersects reports whether r and o share any area. Touching edges (zero
// overlap) do not count, matching the half-open [min, max) convention.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}
