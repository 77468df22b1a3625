package pdfmodel

import "github.com/mcudoc/refdoc/internal/geom"

// ObjLink is an internal page-to-page annotation link.
type ObjLink struct {
	BBox         geom.Rectangle
	DestPageIdx  int
	chars        []*Character
}

// Characters returns the characters this link's bbox was found to contain,
// populated by Page's link-association post-pass.
func (l ObjLink) Characters() []*Character { return l.chars }

// WebLink is an external URL link, possibly spanning multiple bboxes (line
// wraps) over a contiguous character range.
type WebLink struct {
	BBoxes    []geom.Rectangle
	CharStart int
	CharCount int
	URL       string
}

// BBoxCount returns the number of bboxes (line-wrap segments) this weblink
// spans.
func (w WebLink) BBoxCount() int { return len(w.BBoxes) }

// Range returns the [start, start+count) character index range the link
// covers.
func (w WebLink) Range() (start, end int) { return w.CharStart, w.CharStart + w.CharCount }
