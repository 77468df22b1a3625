package geom

import "math"

// Direction classifies a Line by its dominant axis. Mirrors the
// specialization rule: a line specializes to horizontal or vertical when its
// off-axis delta is within epsilon of zero.
type Direction int

const (
	DirAngled Direction = iota
	DirHorizontal
	DirVertical
)

// axisEpsilon is the tolerance below which a line's off-axis delta is
// considered zero for specialization purposes.
const axisEpsilon = 1e-6

// Line is a straight segment with a stroke width, used for both glyph
// baselines (width 0) and vector path / table-border segments.
type Line struct {
	P0, P1 Point
	Width  float64
	Kind   Kind
}

// NewLine builds a Line, always orienting P0 before P1 in reading order
// (left-to-right, or for vertical lines bottom-to-top) so that callers never
// have to special-case the order a path emitted its points in.
func NewLine(p0, p1 Point, width float64) Line {
	l := Line{P0: p0, P1: p1, Width: width}
	switch l.Direction() {
	case DirHorizontal:
		if l.P0.X > l.P1.X {
			l.P0, l.P1 = l.P1, l.P0
		}
	case DirVertical:
		if l.P0.Y > l.P1.Y {
			l.P0, l.P1 = l.P1, l.P0
		}
	}
	return l
}

// Direction reports which axis the line is aligned to.
func (l Line) Direction() Direction {
	dx := math.Abs(l.P1.X - l.P0.X)
	dy := math.Abs(l.P1.Y - l.P0.Y)
	switch {
	case dy <= axisEpsilon && dx > axisEpsilon:
		return DirHorizontal
	case dx <= axisEpsilon && dy > axisEpsilon:
		return DirVertical
	default:
		return DirAngled
	}
}

// Length returns the Euclidean length of the segment.
func (l Line) Length() float64 {
	return l.P0.Dist(l.P1)
}

// Specialize returns the line unchanged for angled lines, or the narrower
// HLine/VLine representation when the line is axis-aligned.
func (l Line) Specialize() any {
	switch l.Direction() {
	case DirHorizontal:
		return l.AsHLine()
	case DirVertical:
		return l.AsVLine()
	default:
		return l
	}
}

// AsHLine reinterprets the line as a horizontal segment at y=P0.Y spanning
// [P0.X, P1.X]. Callers must only call this on lines whose Direction is
// DirHorizontal (or treat the result as approximate otherwise).
func (l Line) AsHLine() HLine {
	return HLine{Y: l.P0.Y, X0: l.P0.X, X1: l.P1.X, Width: l.Width}
}

// AsVLine reinterprets the line as a vertical segment at x=P0.X spanning
// [P0.Y, P1.Y].
func (l Line) AsVLine() VLine {
	return VLine{X: l.P0.X, Y0: l.P0.Y, Y1: l.P1.Y, Width: l.Width}
}

// HLine is a horizontal segment: all points share Y.
type HLine struct {
	Y      float64
	X0, X1 float64
	Width  float64
}

// AsLine widens an HLine back into the general Line representation.
func (h HLine) AsLine() Line {
	return NewLine(Point{X: h.X0, Y: h.Y}, Point{X: h.X1, Y: h.Y}, h.Width)
}

// Overlaps reports whether the two horizontal segments' x-ranges intersect
// within atol, given they are already known (or assumed) to share a y-row.
func (h HLine) Overlaps(o HLine, atol float64) bool {
	return h.X0 <= o.X1+atol && o.X0 <= h.X1+atol
}

// Mid returns the point at the segment's midpoint.
func (h HLine) Mid() Point {
	return Point{X: (h.X0 + h.X1) / 2, Y: h.Y}
}

// VLine is a vertical segment: all points share X.
type VLine struct {
	X      float64
	Y0, Y1 float64
	Width  float64
}

// AsLine widens a VLine back into the general Line representation.
func (v VLine) AsLine() Line {
	return NewLine(Point{X: v.X, Y: v.Y0}, Point{X: v.X, Y: v.Y1}, v.Width)
}

// Overlaps reports whether the two vertical segments' y-ranges intersect
// within atol.
func (v VLine) Overlaps(o VLine, atol float64) bool {
	return v.Y0 <= o.Y1+atol && o.Y0 <= v.Y1+atol
}

// Mid returns the point at the segment's midpoint.
func (v VLine) Mid() Point {
	return Point{X: v.X, Y: (v.Y0 + v.Y1) / 2}
}
