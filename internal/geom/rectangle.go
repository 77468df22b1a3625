package geom

import "math"

// Rectangle is an axis-aligned box in PDF user space. The constructor
// normalizes point ordering, so every Rectangle value satisfies
// Left<=Right and Bottom<=Top regardless of how its corners were supplied.
type Rectangle struct {
	Left, Bottom, Right, Top float64
}

// NewRectangle builds a Rectangle from two opposite corners in any order.
func NewRectangle(x0, y0, x1, y1 float64) Rectangle {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{Left: x0, Bottom: y0, Right: x1, Top: y1}
}

// Width returns Right-Left.
func (r Rectangle) Width() float64 { return r.Right - r.Left }

// Height returns Top-Bottom.
func (r Rectangle) Height() float64 { return r.Top - r.Bottom }

// Empty reports whether the rectangle has zero area.
func (r Rectangle) Empty() bool { return r.Width() == 0 || r.Height() == 0 }

// Midpoint returns the rectangle's center.
func (r Rectangle) Midpoint() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Bottom + r.Top) / 2}
}

// Points returns the four corners in CCW order starting at the lower-left:
// lower-left, lower-right, upper-right, upper-left.
func (r Rectangle) Points() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Bottom},
		{X: r.Right, Y: r.Bottom},
		{X: r.Right, Y: r.Top},
		{X: r.Left, Y: r.Top},
	}
}

// Lines returns the four edges in the same CCW order as Points, closing the
// loop back to the lower-left corner.
func (r Rectangle) Lines() [4]Line {
	pts := r.Points()
	return [4]Line{
		NewLine(pts[0], pts[1], 0),
		NewLine(pts[1], pts[2], 0),
		NewLine(pts[2], pts[3], 0),
		NewLine(pts[3], pts[0], 0),
	}
}

// ContainsPoint reports whether p lies within the rectangle, inclusive of
// the boundary.
func (r Rectangle) ContainsPoint(p Point) bool {
	return r.Left <= p.X && p.X <= r.Right && r.Bottom <= p.Y && p.Y <= r.Top
}

// ContainsRect reports whether other lies entirely within r.
func (r Rectangle) ContainsRect(other Rectangle) bool {
	return r.Left <= other.Left && other.Right <= r.Right &&
		r.Bottom <= other.Bottom && other.Top <= r.Top
}

// Overlaps reports whether r and other share any area (or, for a
// zero-width/height rectangle, any boundary) within atol.
func (r Rectangle) Overlaps(other Rectangle, atol float64) bool {
	return r.Left <= other.Right+atol && other.Left <= r.Right+atol &&
		r.Bottom <= other.Top+atol && other.Bottom <= r.Top+atol
}

// IsClose reports whether every corresponding edge of r and other agree
// within the given relative and absolute tolerances, the same semantics as
// math.IsClose applied pairwise to the four bounds.
func (r Rectangle) IsClose(other Rectangle, rtol, atol float64) bool {
	return isClose(r.Left, other.Left, rtol, atol) &&
		isClose(r.Bottom, other.Bottom, rtol, atol) &&
		isClose(r.Right, other.Right, rtol, atol) &&
		isClose(r.Top, other.Top, rtol, atol)
}

// Offset grows (or, with negative values, shrinks) the rectangle uniformly
// on every side.
func (r Rectangle) Offset(d float64) Rectangle {
	return Rectangle{Left: r.Left - d, Bottom: r.Bottom - d, Right: r.Right + d, Top: r.Top + d}
}

// OffsetX grows the rectangle only horizontally.
func (r Rectangle) OffsetX(d float64) Rectangle {
	return Rectangle{Left: r.Left - d, Bottom: r.Bottom, Right: r.Right + d, Top: r.Top}
}

// OffsetY grows the rectangle only vertically.
func (r Rectangle) OffsetY(d float64) Rectangle {
	return Rectangle{Left: r.Left, Bottom: r.Bottom - d, Right: r.Right, Top: r.Top + d}
}

// Translated shifts the rectangle by p.
func (r Rectangle) Translated(p Point) Rectangle {
	return Rectangle{Left: r.Left + p.X, Bottom: r.Bottom + p.Y, Right: r.Right + p.X, Top: r.Top + p.Y}
}

// Rotated rotates the rectangle by deg (a multiple of 90) around the origin
// of a page of the given width/height, returning the unrotated-view bbox a
// rotated-page character/path would occupy. deg must be one of 0, 90, 180,
// 270; any other value returns r unchanged.
func (r Rectangle) Rotated(deg int, pageWidth, pageHeight float64) Rectangle {
	switch ((deg % 360) + 360) % 360 {
	case 90:
		return Rectangle{Left: r.Bottom, Bottom: pageWidth - r.Right, Right: r.Top, Top: pageWidth - r.Left}
	case 180:
		return Rectangle{Left: pageWidth - r.Right, Bottom: pageHeight - r.Top, Right: pageWidth - r.Left, Top: pageHeight - r.Bottom}
	case 270:
		return Rectangle{Left: pageHeight - r.Top, Bottom: r.Left, Right: pageHeight - r.Bottom, Top: r.Right}
	default:
		return r
	}
}

// Joined returns the smallest rectangle containing both r and other. Joined
// is associative, commutative and idempotent, and r.Joined(other) == r
// whenever r.ContainsRect(other).
func (r Rectangle) Joined(other Rectangle) Rectangle {
	if r.Empty() && r == (Rectangle{}) {
		return other
	}
	if other.Empty() && other == (Rectangle{}) {
		return r
	}
	return Rectangle{
		Left:   math.Min(r.Left, other.Left),
		Bottom: math.Min(r.Bottom, other.Bottom),
		Right:  math.Max(r.Right, other.Right),
		Top:    math.Max(r.Top, other.Top),
	}
}

// Round rounds all four bounds to ndigits decimal places.
func (r Rectangle) Round(ndigits int) Rectangle {
	return Rectangle{
		Left:   roundTo(r.Left, ndigits),
		Bottom: roundTo(r.Bottom, ndigits),
		Right:  roundTo(r.Right, ndigits),
		Top:    roundTo(r.Top, ndigits),
	}
}

// JoinAll folds Joined over a non-empty slice of rectangles.
func JoinAll(rects []Rectangle) Rectangle {
	if len(rects) == 0 {
		return Rectangle{}
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Joined(r)
	}
	return out
}
