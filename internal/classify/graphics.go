package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// captionRe matches a bold caption line's leading "Figure N." / "Table N."
// marker, precompiled once at package init rather than per call.
var captionRe = regexp.MustCompile(`^(Figure|Table)\s+(\d+)\.`)

// GraphicKind classifies a graphic cluster's reconstructed role.
type GraphicKind string

const (
	KindFigure GraphicKind = "figure"
	KindTable GraphicKind = "table"
	KindTableLines GraphicKind = "table_lines"
	KindRegisterTable GraphicKind = "register_table"
)

// Caption is a detected "Figure N." / "Table N." caption.
type Caption struct {
	Kind string // "Figure" or "Table"
	Number int
	BBox geom.Rectangle
}

// ClassifiedGraphic is one graphic cluster after classification, optionally
// paired with a caption.
type ClassifiedGraphic struct {
	Kind GraphicKind
	BBox geom.Rectangle
	Caption *Caption
	Cluster pdfmodel.GraphicCluster
	VLines []geom.VLine
	HLines []geom.HLine
}

// GraphicsInArea retrieves graphic clusters inside area (widened by half an
// em), finds bold captions, pairs each with the cluster beneath it,
// classifies the rest, and reclassifies table clusters with a digit band
// above them as register tables.
func GraphicsInArea(page *pdfmodel.Page, area geom.Rectangle, tmpl Template) []ClassifiedGraphic {
	sp := tmpl.Spacing(page.Rotation())
	widened := area.OffsetX(sp.XEm / 2)
	clusters := page.GraphicClusters(nil, 0)

	var inArea []pdfmodel.GraphicCluster
	for _, c := range clusters {
		if widened.Overlaps(c.BBox, sp.XEm) {
			inArea = append(inArea, c)
		}
	}

	captions := findCaptions(page, widened, sp)
	pairs := pairCaptionsToGraphics(captions, inArea)

	var out []ClassifiedGraphic
	used := map[int]bool{}
	for _, pr := range pairs {
		used[pr.clusterIdx] = true
		g := classifyCluster(inArea[pr.clusterIdx], tmpl)
		g.Caption = &pr.caption
		out = append(out, g)
	}
	for i, c := range inArea {
		if used[i] {
			continue
		}
		out = append(out, classifyCluster(c, tmpl))
	}

	for i := range out {
		if out[i].Kind == KindTable {
			reclassifyRegisterTable(page, &out[i], sp)
		}
		buildGridLines(&out[i], tmpl)
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].BBox.Top > out[b].BBox.Top })
	return out
}

func findCaptions(page *pdfmodel.Page, area geom.Rectangle, sp Spacing) []Caption {
	chars := page.CharsInArea(area)
	lines := layout.CharLinesInArea(chars, page.Height(), layout.Spacing{SC: sp.SC})
	var out []Caption
	for _, l := range lines {
		if !anyBold(l) {
			continue
		}
		m := captionRe.FindStringSubmatch(strings.TrimSpace(l.Content()))
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[2])
		out = append(out, Caption{Kind: m[1], Number: n, BBox: l.BBox()})
	}
	return out
}

func anyBold(l layout.CharLine) bool {
	if len(l.Chars) == 0 {
		return false
	}
	return l.Chars[0].IsBold()
}

type captionPair struct {
	caption Caption
	clusterIdx int
}

// pairCaptionsToGraphics pairs each caption with the graphic cluster
// directly below it in the same horizontal slice, step 3.
func pairCaptionsToGraphics(captions []Caption, clusters []pdfmodel.GraphicCluster) []captionPair {
	var pairs []captionPair
	for _, cap := range captions {
		best := -1
		bestDist := 1e18
		for i, cl := range clusters {
			if cl.BBox.Top > cap.BBox.Bottom {
				continue
			}
			if !cl.BBox.Overlaps(geom.NewRectangle(cap.BBox.Left, cl.BBox.Bottom, cap.BBox.Right, cl.BBox.Top), 0) {
				continue
			}
			d := cap.BBox.Bottom - cl.BBox.Top
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			pairs = append(pairs, captionPair{caption: cap, clusterIdx: best})
		}
	}
	return pairs
}

// classifyCluster implements step 4's classification rules.
func classifyCluster(c pdfmodel.GraphicCluster, tmpl Template) ClassifiedGraphic {
	if len(c.Images) > 0 {
		return ClassifiedGraphic{Kind: KindFigure, BBox: c.BBox, Cluster: c}
	}
	if tmpl.Name() == "blue_gray" {
		allGrayOrBlue := true
		for _, p := range c.Paths {
			name := tmpl.ColorName(p.Stroke)
			fillName := tmpl.ColorName(p.Fill)
			if name != "gray" && fillName != "dark_blue" {
				allGrayOrBlue = false
				break
			}
		}
		if allGrayOrBlue && len(c.Paths) > 0 {
			return ClassifiedGraphic{Kind: KindTable, BBox: c.BBox, Cluster: c}
		}
		return ClassifiedGraphic{Kind: KindFigure, BBox: c.BBox, Cluster: c}
	}

	twoPoint := 0
	edgeRatio := 0
	for _, p := range c.Paths {
		if p.IsTwoPoint() {
			twoPoint++
		}
		edgeRatio += edgePointFraction(p, c.BBox)
	}
	if len(c.Paths) > 0 && twoPoint > len(c.Paths)/2 {
		return ClassifiedGraphic{Kind: KindTableLines, BBox: c.BBox, Cluster: c}
	}
	if len(c.Paths) > 0 && float64(edgeRatio)/float64(len(c.Paths)*3) >= 2.0/3.0 {
		return ClassifiedGraphic{Kind: KindTable, BBox: c.BBox, Cluster: c}
	}
	return ClassifiedGraphic{Kind: KindFigure, BBox: c.BBox, Cluster: c}
}

func edgePointFraction(p pdfmodel.Path, bbox geom.Rectangle) int {
	count := 0
	for _, pt := range p.Points() {
		if near(pt.X, bbox.Left) || near(pt.X, bbox.Right) || near(pt.Y, bbox.Bottom) || near(pt.Y, bbox.Top) {
			count++
		}
	}
	return count
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.5
}

// reclassifyRegisterTable implements step 5: if >= 1/3 of the
// non-whitespace characters in the one-em band above the cluster are
// digits, reclassify as register_table and extend the bbox upward.
func reclassifyRegisterTable(page *pdfmodel.Page, g *ClassifiedGraphic, sp Spacing) {
	band := geom.NewRectangle(g.BBox.Left, g.BBox.Top, g.BBox.Right, g.BBox.Top+sp.YEm)
	chars := page.CharsInArea(band)
	total, digits := 0, 0
	for _, c := range chars {
		if c.Unicode == ' ' || c.Unicode == '\t' || c.Unicode == '\n' {
			continue
		}
		total++
		if c.Unicode >= '0' && c.Unicode <= '9' {
			digits++
		}
	}
	if total > 0 && float64(digits)/float64(total) >= 1.0/3.0 {
		g.Kind = KindRegisterTable
		g.BBox = g.BBox.Joined(band)
	}
}

// buildGridLines extracts the VLine/HLine sets a table-classified cluster
// needs for internal/table's grid inference: every horizontal or vertical
// edge of every path in the cluster becomes an HLine or VLine, and angled
// edges are dropped. Under the blue-gray template, every horizontal edge of
// a dark-blue-filled path gets triple width. Paths are not filtered by
// color, segment count or thickness, and black-white rectangles are not
// split or projected by aspect ratio: both templates take every
// axis-aligned edge as it is.
func buildGridLines(g *ClassifiedGraphic, tmpl Template) {
	if g.Kind != KindTable && g.Kind != KindTableLines && g.Kind != KindRegisterTable {
		return
	}
	for _, p := range g.Cluster.Paths {
		ls := p.Lines()
		for _, l := range ls {
			switch l.Direction() {
			case geom.DirHorizontal:
				hl := l.AsHLine()
				if tmpl.Name() == "blue_gray" && tmpl.ColorName(p.Fill) == "dark_blue" {
					hl.Width *= 3
				}
				g.HLines = append(g.HLines, hl)
			case geom.DirVertical:
				g.VLines = append(g.VLines, l.AsVLine())
			}
		}
	}
}
