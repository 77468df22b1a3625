// Package table reconstructs tables from vector line segments and
// bold-text heuristics.
package table

import (
	"sort"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// Kind classifies a reconstructed table.
type Kind int

const (
	KindTable Kind = iota
	KindRegister
	KindBitfield
	KindVirtual
)

// CharProvider is the subset of pdfmodel.Page a Table needs to pull the
// character lines inside a cell's bbox.
type CharProvider interface {
	CharsInArea(rect geom.Rectangle) []pdfmodel.Character
}

// Borders records which of a cell's four edges have a real drawn border.
type Borders struct {
	Left, Bottom, Right, Top bool
}

// Table is the reconstructed grid: bbox, optional caption, coordinate
// grids, grid size and cells.
type Table struct {
	BBox geom.Rectangle
	CaptionBBox geom.Rectangle
	HasCaption bool
	Kind Kind

	XPos []float64 // column boundary coordinates, len = Cols+1
	YPos []float64 // row boundary coordinates, len = Rows+1, descending (top to bottom)

	Cells []*Cell

	BitHeaderRow int // -1 if not a register table
	charProvider CharProvider
}

// Cols and Rows return the grid dimensions.
func (t *Table) Cols() int { return len(t.XPos) - 1 }
func (t *Table) Rows() int { return len(t.YPos) - 1 }

// HeaderRows returns the number of leading rows flagged as header.
func (t *Table) HeaderRows() int {
	max := -1
	for _, c := range t.Cells {
		if !c.IsHeader {
			continue
		}
		for _, pos := range c.Positions {
			if pos[0] > max {
				max = pos[0]
			}
		}
	}
	return max + 1
}

// clusterCoords clusters 1-D coordinates within atol, returning the sorted
// representative (mean) of each cluster.
func clusterCoords(vals []float64, atol float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	var clusters [][]float64
	cur := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-cur[len(cur)-1] <= atol {
			cur = append(cur, v)
		} else {
			clusters = append(clusters, cur)
			cur = []float64{v}
		}
	}
	clusters = append(clusters, cur)

	out := make([]float64, len(clusters))
	for i, c := range clusters {
		sum := 0.0
		for _, v := range c {
			sum += v
		}
		out[i] = sum / float64(len(c))
	}
	return out
}

func nearestIndex(sorted []float64, v, atol float64) (int, bool) {
	for i, s := range sorted {
		if abs(s-v) <= atol {
			return i, true
		}
	}
	return -1, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// em returns min(x_em, y_em)/4, the grid-clustering tolerance
// names explicitly.
func em(xEm, yEm float64) float64 {
	m := xEm
	if yEm < m {
		m = yEm
	}
	return m / 4
}

// lineAssembler is the hook table.go uses to get CharLines inside a rect,
// indirecting through internal/layout so this package's grid/register logic
// can reuse the same line-assembly CharLinesInArea uses elsewhere.
func lineAssembler(cp CharProvider, rect geom.Rectangle) []layout.CharLine {
	chars := cp.CharsInArea(rect)
	return layout.CharLinesInArea(chars, rect.Top, layout.DefaultSpacing)
}
