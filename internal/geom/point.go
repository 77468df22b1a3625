// Package geom implements the geometry primitives the rest of the
// reconstruction pipeline is built on: points, lines, rectangles and the
// one-dimensional region clustering used throughout line and graphic
// assembly.
//
// Coordinates are PDF user space: y grows upward. Every type here is an
// immutable value; derived quantities are computed, never cached on the
// value itself.
package geom

import "math"

// Kind tags a geometry value with the role it plays in a page, so callers
// that only care about e.g. "is this a table border" don't need a type
// switch on the containing slice.
type Kind int

const (
	KindUnknown Kind = iota
	KindChar
	KindPath
	KindImage
	KindTableBorder
)

// Point is a location in PDF user space.
type Point struct {
	X, Y float64
	Kind Kind
}

// Sub returns the vector from p to other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Dist returns the Euclidean distance between p and other.
func (p Point) Dist(other Point) float64 {
	dx, dy := p.X-other.X, p.Y-other.Y
	return math.Hypot(dx, dy)
}

// Round rounds both coordinates to ndigits decimal places.
func (p Point) Round(ndigits int) Point {
	return Point{X: roundTo(p.X, ndigits), Y: roundTo(p.Y, ndigits), Kind: p.Kind}
}

func roundTo(v float64, ndigits int) float64 {
	m := math.Pow(10, float64(ndigits))
	return math.Round(v*m) / m
}

func isClose(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
