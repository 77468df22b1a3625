// Package layout assembles a page's characters into reading-order lines.
// Graphic clustering (paths/images into graphic blocks) is delegated to
// pdfmodel.Page.GraphicClusters since that clustering primitive lives at
// the page level instead.
package layout

import (
	"sort"
	"strings"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// CharCluster is a whitespace-separated run of characters within a CharLine.
type CharCluster struct {
	Chars []pdfmodel.Character
}

// Content concatenates the cluster's characters.
func (c CharCluster) Content() string {
	var b strings.Builder
	for _, ch := range c.Chars {
		b.WriteRune(ch.Unicode)
	}
	return b.String()
}

// BBox returns the join of the cluster's character bboxes.
func (c CharCluster) BBox() geom.Rectangle {
	rects := make([]geom.Rectangle, len(c.Chars))
	for i, ch := range c.Chars {
		rects[i] = ch.BBox()
	}
	return geom.JoinAll(rects)
}

// CharLine is a run of characters sharing a baseline after sub/superscript
// merging.
type CharLine struct {
	Chars []pdfmodel.Character
	Bottom float64
	Origin float64
	Top float64
	Height float64
	Rotation int
	Offset float64 // horizontal offset (x for horizontal lines, y for vertical)
	SortOrigin float64
}

// BBox returns the line's bounding box.
func (l CharLine) BBox() geom.Rectangle {
	rects := make([]geom.Rectangle, len(l.Chars))
	for i, c := range l.Chars {
		rects[i] = c.BBox()
	}
	return geom.JoinAll(rects)
}

// Fonts returns the set of font names used on the line.
func (l CharLine) Fonts() map[string]bool {
	out := make(map[string]bool)
	for _, c := range l.Chars {
		out[c.Font] = true
	}
	return out
}

// ContainsFont reports whether fragment is a substring of any character's
// font name on the line, e.g. ContainsFont("Italic") matches "Arial-Italic".
func (l CharLine) ContainsFont(fragment string) bool {
	for _, c := range l.Chars {
		if strings.Contains(c.Font, fragment) {
			return true
		}
	}
	return false
}

// Content concatenates the line's characters in their current order.
func (l CharLine) Content() string {
	var b strings.Builder
	for _, c := range l.Chars {
		b.WriteRune(c.Unicode)
	}
	return b.String()
}

// Clusters groups the line's characters into whitespace-separated runs: a
// new cluster starts whenever the gap to the previous character exceeds
// atol. atol defaults to the line's own Height (one em) when 0 is passed.
func (l CharLine) Clusters(atol float64) []CharCluster {
	if atol == 0 {
		atol = l.Height
	}
	var clusters []CharCluster
	var cur []pdfmodel.Character
	var prevEnd float64
	horizontal := l.Rotation == 0 || l.Rotation == 180
	for i, c := range l.Chars {
		if isWhitespace(c.Unicode) {
			continue
		}
		var gap float64
		if i > 0 && len(cur) > 0 {
			if horizontal {
				gap = c.BBox().Left - prevEnd
			} else {
				gap = c.BBox().Bottom - prevEnd
			}
		}
		if len(cur) > 0 && gap > atol {
			clusters = append(clusters, CharCluster{Chars: cur})
			cur = nil
		}
		cur = append(cur, c)
		if horizontal {
			prevEnd = c.BBox().Right
		} else {
			prevEnd = c.BBox().Top
		}
	}
	if len(cur) > 0 {
		clusters = append(clusters, CharCluster{Chars: cur})
	}
	return clusters
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == 0
}

// Spacing carries the subset of the vendor template's tolerances that
// CharLinesInArea needs: the sub/superscript merge tolerance, as a
// fraction of line height.
type Spacing struct {
	SC float64 // sub/superscript merge tolerance, fraction of height
}

// DefaultSpacing matches the black-white template's default sc.
var DefaultSpacing = Spacing{SC: 0.35}

// CharLinesInArea assembles chars into CharLines covering all four
// rotations, via a five-step algorithm:
// 1. partition by rotation into horizontal/vertical buckets keyed by
// rounded origin;
// 2. collapse each bucket into a provisional line;
// 3. sort by sort-origin across all rotations;
// 4. merge vertically-adjacent lines within rtol*height, demoting the
// shorter line's characters to sub/superscript;
// 5. re-sort each line's characters into reading order.
func CharLinesInArea(chars []pdfmodel.Character, pageHeight float64, sp Spacing) []CharLine {
	horizBuckets := map[float64][]pdfmodel.Character{}
	vertBuckets := map[float64][]pdfmodel.Character{}

	for _, c := range chars {
		switch c.Rotation {
		case 0, 180:
			key := roundTo1(c.Origin.Y)
			horizBuckets[key] = append(horizBuckets[key], c)
		case 90, 270:
			key := roundTo1(c.Origin.X)
			vertBuckets[key] = append(vertBuckets[key], c)
		}
	}

	var lines []CharLine
	for _, group := range horizBuckets {
		if ln, ok := collapse(group, 0, pageHeight); ok {
			lines = append(lines, ln)
		}
	}
	for _, group := range vertBuckets {
		if ln, ok := collapse(group, 90, pageHeight); ok {
			lines = append(lines, ln)
		}
	}

	sort.SliceStable(lines, func(a, b int) bool { return lines[a].SortOrigin < lines[b].SortOrigin })

	lines = mergeAdjacent(lines, sp)

	for i := range lines {
		reorder(&lines[i])
	}
	return lines
}

func roundTo1(v float64) float64 {
	return float64(int(v*10+sign(v)*0.5)) / 10
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func collapse(group []pdfmodel.Character, rotationClass int, pageHeight float64) (CharLine, bool) {
	allWS := true
	for _, c := range group {
		if !isWhitespace(c.Unicode) {
			allWS = false
			break
		}
	}
	if allWS {
		return CharLine{}, false
	}

	bbox := geom.JoinAll(bboxesOf(group))
	ln := CharLine{Chars: group, Bottom: bbox.Bottom, Top: bbox.Top, Height: bbox.Height()}
	switch rotationClass {
	case 0:
		ln.Rotation = group[0].Rotation
		ln.Origin = group[0].Origin.Y
		ln.SortOrigin = pageHeight - ln.Origin
	default:
		ln.Rotation = group[0].Rotation
		ln.Origin = group[0].Origin.X
		ln.SortOrigin = ln.Origin
	}
	return ln, true
}

func bboxesOf(chars []pdfmodel.Character) []geom.Rectangle {
	out := make([]geom.Rectangle, len(chars))
	for i, c := range chars {
		out[i] = c.BBox()
	}
	return out
}

func mergeAdjacent(lines []CharLine, sp Spacing) []CharLine {
	if len(lines) < 2 {
		return lines
	}
	out := make([]CharLine, 0, len(lines))
	cur := lines[0]
	for _, next := range lines[1:] {
		tol := sp.SC * maxF(cur.Height, next.Height)
		if abs(next.SortOrigin-cur.SortOrigin) <= tol {
			tall, short := cur, next
			if short.Height > tall.Height {
				tall, short = short, tall
			}
			tall.Chars = append(append([]pdfmodel.Character{}, tall.Chars...), short.Chars...)
			tall.Bottom = minF(tall.Bottom, short.Bottom)
			tall.Top = maxF(tall.Top, short.Top)
			cur = tall
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}

func reorder(l *CharLine) {
	chars := l.Chars
	switch l.Rotation {
	case 0, 180:
		sort.SliceStable(chars, func(a, b int) bool {
			return readingKeyHoriz(chars[a]) < readingKeyHoriz(chars[b])
		})
	default:
		sort.SliceStable(chars, func(a, b int) bool {
			return readingKeyVert(chars[a], l.Rotation) < readingKeyVert(chars[b], l.Rotation)
		})
	}
	l.Chars = chars
}

const newlinePush = 1e9

func readingKeyHoriz(c pdfmodel.Character) float64 {
	k := c.Origin.X
	if c.Unicode == '\n' || c.Unicode == '\r' {
		k += newlinePush
	}
	return k
}

func readingKeyVert(c pdfmodel.Character, rotation int) float64 {
	mid := c.TightBBox().Midpoint().Y
	k := mid
	if rotation == 270 {
		k = -mid
	}
	if c.Unicode == '\n' || c.Unicode == '\r' {
		k += newlinePush
	}
	return k
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
