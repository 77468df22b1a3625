package pdfmodel

import "github.com/mcudoc/refdoc/internal/geom"

// PathType classifies a path's paint operation.
type PathType int

const (
	PathFill PathType = iota
	PathStroke
	PathFillStroke
)

// Cap mirrors the PDF line cap style operand.
type Cap int

// Join mirrors the PDF line join style operand.
type Join int

// Path is a vector drawing primitive: a transform, an ordered list of
// control points tagged MOVE/LINE/BEZIER, and paint attributes.
type Path struct {
	Matrix [6]float64
	Segments []Segment
	Stroke uint32
	Fill uint32
	StrokeW float64
	CapStyle Cap
	JoinStyle Join
	bbox geom.Rectangle
}

func newPath(p PathPrimitive) Path {
	segs := p.Segments
	// A closed path repeats its first point at the end.
	if len(segs) > 1 && segs[len(segs)-1].Kind == SegClose {
		segs = append(segs[:len(segs)-1:len(segs)-1], Segment{Kind: SegLine, X: segs[0].X, Y: segs[0].Y})
	}
	return Path{
		Matrix: p.Matrix,
		Segments: segs,
		Stroke: p.StrokeRGBA,
		Fill: p.FillRGBA,
		StrokeW: p.StrokeW,
		CapStyle: Cap(p.Cap),
		JoinStyle: Join(p.Join),
		bbox: geom.NewRectangle(p.BBox[0], p.BBox[1], p.BBox[2], p.BBox[3]),
	}
}

// Count returns the number of control points.
func (p Path) Count() int { return len(p.Segments) }

// BBox returns the path's bounding box, rotated into the unrotated page
// view by the caller (Page.Paths applies page rotation uniformly).
func (p Path) BBox() geom.Rectangle { return p.bbox }

// Points returns the control points as geom.Points, in order.
func (p Path) Points() []geom.Point {
	out := make([]geom.Point, 0, len(p.Segments))
	for _, s := range p.Segments {
		out = append(out, geom.Point{X: s.X, Y: s.Y})
	}
	return out
}

// Lines returns consecutive point pairs as Line segments; a path with N
// points yields N-1 lines (no implicit close — callers that need the closing
// edge rely on the repeated-first-point convention applied at ingestion).
func (p Path) Lines() []geom.Line {
	pts := p.Points()
	if len(pts) < 2 {
		return nil
	}
	out := make([]geom.Line, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, geom.NewLine(pts[i], pts[i+1], p.StrokeW))
	}
	return out
}

// IsTwoPoint reports whether this path is a bare line segment (two points,
// no curve) — the signature graphic_clusters/classify use to recognize
// table border strokes among vector paths.
func (p Path) IsTwoPoint() bool { return p.Count() == 2 }

// Image presents the same surface as Path (four corner points, four edge
// lines, zero stroke/fill/width) so clustering code can treat placed images
// uniformly with vector paths,
type Image struct {
	bbox geom.Rectangle
}

func newImage(p ImagePrimitive) Image {
	return Image{bbox: geom.NewRectangle(p.BBox[0], p.BBox[1], p.BBox[2], p.BBox[3])}
}

// Count always returns 4 for an Image, matching Path's surface.
func (im Image) Count() int { return 4 }

// BBox returns the image's placement rectangle.
func (im Image) BBox() geom.Rectangle { return im.bbox }

// Points returns the four corners, CCW from lower-left.
func (im Image) Points() []geom.Point {
	pts := im.bbox.Points()
	return pts[:]
}

// Lines returns the four edges.
func (im Image) Lines() []geom.Line {
	ls := im.bbox.Lines()
	return ls[:]
}

// Stroke/Fill/StrokeW are always zero for an Image, matching the Python
// Image class presenting stroke=fill=width=0.
func (im Image) Stroke() uint32 { return 0 }
func (im Image) Fill() uint32 { return 0 }
func (im Image) StrokeW() float64 { return 0 }
