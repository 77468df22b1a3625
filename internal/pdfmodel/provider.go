// Package pdfmodel wraps a read-only "page primitive provider"
// with the document/page/character/path/image/link/structure model the rest
// of the reconstruction pipeline builds on. The provider interfaces in this
// file are the inward contract: anything that can enumerate glyphs, paths,
// images and links per page in PDF user space can be plugged in as a
// DocumentProvider. internal/pdfmodel/pdfcpuprovider.go supplies the one
// concrete implementation this module ships, backed by pdfcpu.
package pdfmodel

// RenderMode mirrors the PDF text rendering mode operand (Tr).
type RenderMode int

const (
	RenderUnknown RenderMode = iota - 1
	RenderFill
	RenderStroke
	RenderFillStroke
	RenderInvisible
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClip
)

// SegmentKind tags one point of a path's control-point stream.
type SegmentKind int

const (
	SegMove SegmentKind = iota
	SegLine
	SegBezier
	SegClose
)

// Segment is one control point of a path, in PDF user space.
type Segment struct {
	Kind SegmentKind
	X, Y float64
}

// GlyphPrimitive is one rendered character as the provider sees it, before
// any of the bbox-cache or reading-order normalization pdfmodel.Page applies.
type GlyphPrimitive struct {
	Unicode rune
	OriginX float64
	OriginY float64
	HasLoose bool
	LooseBBox [4]float64 // left, bottom, right, top
	TightBBox [4]float64
	Rotation int
	Render RenderMode
	FontName string
	FontFlags int
	Size float64
	Weight int
	FillRGBA uint32
	StrokeRGBA uint32
}

// PathPrimitive is one vector path as the provider sees it.
type PathPrimitive struct {
	Matrix [6]float64
	Segments []Segment
	StrokeRGBA uint32
	FillRGBA uint32
	StrokeW float64
	Cap int
	Join int
	BBox [4]float64
}

// ImagePrimitive is one placed raster/form XObject.
type ImagePrimitive struct {
	Matrix [6]float64
	BBox [4]float64
}

// LinkPrimitive is an internal (page-to-page) annotation link.
type LinkPrimitive struct {
	BBox [4]float64
	DestPageIdx int
}

// WebLinkPrimitive is an external URL link spanning one or more bboxes over
// a contiguous run of characters.
type WebLinkPrimitive struct {
	BBoxes [][4]float64
	CharStart int
	CharCount int
	URL string
}

// StructurePrimitive is one node of the PDF/UA structure tree.
type StructurePrimitive struct {
	Title string
	ActualText string
	AltText string
	Type string
	ObjType string
	Language string
	ID string
	MarkedIDs []int
	Attributes map[string]any
	Children []StructurePrimitive
}

// OutlineItem is one bookmark entry.
type OutlineItem struct {
	Level int
	Title string
	PageIndex int
}

// PageProvider exposes one page's primitives in PDF user space.
type PageProvider interface {
	Width() float64
	Height() float64
	Rotation() int
	Label() string

	GlyphCount() int
	Glyph(i int) GlyphPrimitive

	Paths() []PathPrimitive
	Images() []ImagePrimitive
	Links() []LinkPrimitive
	WebLinks() []WebLinkPrimitive
	Structures() []StructurePrimitive
}

// DocumentProvider is the top-level inward contract .
type DocumentProvider interface {
	Metadata() map[string]string
	PageCount() int
	Page(i int) (PageProvider, error)
	TOC() []OutlineItem
	Destinations() map[string]int // name -> page index
	Close() error
}
