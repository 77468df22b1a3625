package table

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/mcudoc/refdoc/internal/geom"
)

// applyRegisterSpecialization augments a register-table grid: it locates
// the bit-number header row inside the caption rect, optionally a second
// bit-number row elsewhere in the y-grid (a register drawn as two stacked
// 16-bit halves, each with its own header), and closes the table's
// left/right/top edges with synthetic lines so borderless register
// headers still produce a usable grid.
func applyRegisterSpecialization(t *Table, cp CharProvider, opts BuildOptions) {
	if cp == nil || !t.HasCaption {
		return
	}
	centers := bitNumberCenters(cp, t.CaptionBBox)
	if len(centers) == 0 {
		return
	}
	sort.Float64s(centers)

	atol := em(opts.XEm, opts.YEm)
	xs := append([]float64{t.BBox.Left}, centers...)
	xs = append(xs, t.BBox.Right)
	merged := clusterCoords(xs, atol)
	t.XPos = merged

	if len(t.YPos) > 0 {
		t.YPos[0] = t.BBox.Top
	}

	for i := 0; i+1 < len(centers); i++ {
		mid := (centers[i] + centers[i+1]) / 2
		if _, ok := nearestIndex(t.XPos, mid, atol); !ok {
			t.XPos = append(t.XPos, mid)
		}
	}
	sort.Float64s(t.XPos)

	t.BitHeaderRow = secondBitHeaderRow(t, cp)
}

// secondBitHeaderRow scans the rows below the top of the y-grid for a
// second bit-number cluster, returning its row index or -1 if none is
// found (a register drawn as a single combined header has no second row,
// and rewriteRegisterPositions must not fire for it).
func secondBitHeaderRow(t *Table, cp CharProvider) int {
	for row := 1; row < t.Rows(); row++ {
		top, bottom := t.YPos[row], t.YPos[row+1]
		band := geom.NewRectangle(t.BBox.Left, bottom, t.BBox.Right, top)
		if len(bitNumberCenters(cp, band)) > 0 {
			return row
		}
	}
	return -1
}

// bitNumberCenters scans rect for a CharLine whose cluster content parses
// entirely as small integers (a bit-number row: "31 30 29 ... 16" or
// "15 14 ... 0"), returning each number's cluster x-center.
func bitNumberCenters(cp CharProvider, rect geom.Rectangle) []float64 {
	line := lineAssembler(cp, rect)
	var centers []float64
	for _, l := range line {
		clusters := l.Clusters(0)
		numeric := 0
		var xs []float64
		for _, c := range clusters {
			text := strings.TrimSpace(c.Content())
			if text == "" {
				continue
			}
			// datasheet bit-header rows sometimes set position numbers in
			// fullwidth glyphs ("３１" rather than "31"); fold them to their
			// halfwidth form before parsing.
			text = width.Fold.String(text)
			if _, err := strconv.Atoi(text); err == nil {
				numeric++
				xs = append(xs, c.BBox().Midpoint().X)
			}
		}
		if numeric >= 2 && numeric == len(clusters) {
			centers = append(centers, xs...)
		}
	}
	return centers
}

// rewriteRegisterPositions applies the fixed (32,4) grid rewrite: cells
// below the second bit-header row move into the lower 16-bit half of the
// unified column space (right by 16) and up into the shared data row
// (up by BitHeaderRow), then the grid is resized to 32 columns by 4 rows
// regardless of what was originally detected.
func rewriteRegisterPositions(t *Table) {
	for _, c := range t.Cells {
		if c.RowMin() > t.BitHeaderRow {
			c.move(-t.BitHeaderRow, 16)
		}
	}
	target := make([]float64, 33)
	left, right := t.BBox.Left, t.BBox.Right
	for i := range target {
		target[i] = left + (right-left)*float64(i)/32
	}
	t.XPos = target
	t.YPos = []float64{t.BBox.Top, t.BBox.Top - t.BBox.Height()/4, t.BBox.Top - t.BBox.Height()/2, t.BBox.Top - 3*t.BBox.Height()/4, t.BBox.Bottom}
}
