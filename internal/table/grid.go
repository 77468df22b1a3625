package table

import (
	"sort"

	"github.com/mcudoc/refdoc/internal/geom"
)

// BuildOptions parameterizes NewTable.
type BuildOptions struct {
	VLines []geom.VLine
	HLines []geom.HLine
	Caption *geom.Rectangle
	IsRegister bool
	XEm, YEm float64
	BoldFrac float64 // spacing.th: fraction of bold chars that marks a header row
	IsBold func(bbox geom.Rectangle) bool
}

// NewTable infers a grid from vector line segments and extracts cells via a
// four-step algorithm (grid inference, register specialization, cell
// extraction, header detection). cp supplies the character lines used for
// bold-fraction header detection and register bit-number parsing.
func NewTable(bbox geom.Rectangle, opts BuildOptions, cp CharProvider) (*Table, error) {
	atol := em(opts.XEm, opts.YEm)

	var xs, ys []float64
	for _, v := range opts.VLines {
		xs = append(xs, v.X)
	}
	for _, h := range opts.HLines {
		ys = append(ys, h.Y)
	}
	xs = append(xs, bbox.Left, bbox.Right)
	ys = append(ys, bbox.Bottom, bbox.Top)

	xpos := clusterCoords(xs, atol)
	ypos := clusterCoords(ys, atol)
	sort.Sort(sort.Reverse(sort.Float64Slice(ypos)))

	t := &Table{
		BBox: bbox,
		Kind: KindTable,
		XPos: xpos,
		YPos: ypos,
		BitHeaderRow: -1,
		charProvider: cp,
	}
	if opts.Caption != nil {
		t.CaptionBBox = *opts.Caption
		t.HasCaption = true
	}

	if opts.IsRegister {
		t.Kind = KindRegister
		applyRegisterSpecialization(t, cp, opts)
	}

	if t.Cols() < 1 || t.Rows() < 1 {
		return nil, &ContractViolation{Reason: "table grid has zero columns or rows after inference"}
	}

	cells := extractCells(t, opts.VLines, opts.HLines, atol)
	cells = repairBorders(cells, t.Cols(), t.Rows())
	t.Cells = mergeCells(cells, t.Cols(), t.Rows())
	detectHeaders(t, opts)

	if opts.IsRegister && t.BitHeaderRow >= 0 {
		rewriteRegisterPositions(t)
	}

	sort.SliceStable(t.Cells, func(a, b int) bool {
		if t.Cells[a].RowMin() != t.Cells[b].RowMin() {
			return t.Cells[a].RowMin() < t.Cells[b].RowMin()
		}
		return t.Cells[a].ColMin() < t.Cells[b].ColMin()
	})

	return t, nil
}

// ContractViolation is a programmer-error-class failure: an
// invariant the core itself is responsible for maintaining was broken.
type ContractViolation struct {
	Reason string
}

func (e *ContractViolation) Error() string { return "table: contract violation: " + e.Reason }

// StructuralError is a fatal-per-unit failure: the input itself
// could not be reconciled into a valid structure, but the batch continues.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string { return "table: structural violation: " + e.Reason }

func extractCells(t *Table, vlines []geom.VLine, hlines []geom.HLine, atol float64) []*Cell {
	cols, rows := t.Cols(), t.Rows()
	flat := make([]*Cell, 0, rows*cols)
	for ri := 0; ri < rows; ri++ {
		top, bottom := t.YPos[ri], t.YPos[ri+1]
		for ci := 0; ci < cols; ci++ {
			left, right := t.XPos[ci], t.XPos[ci+1]
			cellBBox := geom.NewRectangle(left, bottom, right, top)
			b := Borders{
				Left: segmentAt(vlines, left, bottom, top, atol),
				Right: segmentAt(vlines, right, bottom, top, atol),
				Bottom: segmentAt(hlines, bottom, left, right, atol),
				Top: segmentAt(hlines, top, left, right, atol),
			}
			flat = append(flat, newCell(ri, ci, cellBBox, b, t))
		}
	}
	return flat
}

func segmentAt(lines any, coord, lo, hi, atol float64) bool {
	switch ls := lines.(type) {
	case []geom.VLine:
		mid := (lo + hi) / 2
		for _, v := range ls {
			if abs(v.X-coord) <= atol && v.Y0-atol <= mid && mid <= v.Y1+atol {
				return true
			}
		}
	case []geom.HLine:
		mid := (lo + hi) / 2
		for _, h := range ls {
			if abs(h.Y-coord) <= atol && h.X0-atol <= mid && mid <= h.X1+atol {
				return true
			}
		}
	}
	return false
}

// repairBorders applies the 9-neighbor consistency heuristic
// names: a cell open to the top whose upper neighbour is closed left+right
// (or the symmetric rule on the right) gets the missing border inserted,
// closing spans drawn with partial strokes.
func repairBorders(flat []*Cell, cols, rows int) []*Cell {
	at := func(r, c int) *Cell {
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil
		}
		return flat[r*cols+c]
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := at(r, c)
			if above := at(r-1, c); above != nil {
				if !cell.Borders.Top && above.Borders.Left && above.Borders.Right {
					cell.Borders.Top = true
				}
				if !above.Borders.Bottom && cell.Borders.Left && cell.Borders.Right {
					above.Borders.Bottom = true
				}
			}
			if right := at(r, c+1); right != nil {
				if !cell.Borders.Right && right.Borders.Top && right.Borders.Bottom {
					cell.Borders.Right = true
				}
				if !right.Borders.Left && cell.Borders.Top && cell.Borders.Bottom {
					right.Borders.Left = true
				}
			}
		}
	}
	return flat
}

// mergeCells recursively merges cells missing a right or top border into
// their right/upper neighbour, starting at the bottom-left,
// step 3.
func mergeCells(flat []*Cell, cols, rows int) []*Cell {
	grid := make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = flat[r*cols+c]
		}
	}

	find := func(r, c int) (int, int) {
		target := grid[r][c]
		for rr := 0; rr < rows; rr++ {
			for cc := 0; cc < cols; cc++ {
				if grid[rr][cc] == target {
					return rr, cc
				}
			}
		}
		return r, c
	}

	changed := true
	for changed {
		changed = false
		for r := rows - 1; r >= 0; r-- {
			for c := 0; c < cols; c++ {
				cell := grid[r][c]
				if cell == nil {
					continue
				}
				if !cell.Borders.Right && c+1 < cols {
					nr, nc := find(r, c+1)
					neighbor := grid[nr][nc]
					if neighbor != cell {
						cell.merge(neighbor, "right")
						for _, p := range neighbor.Positions {
							grid[p[0]][p[1]] = cell
						}
						changed = true
					}
				}
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cell := grid[r][c]
				if cell == nil {
					continue
				}
				if !cell.Borders.Top && r-1 >= 0 {
					nr, nc := find(r-1, c)
					neighbor := grid[nr][nc]
					if neighbor != cell {
						cell.merge(neighbor, "top")
						for _, p := range neighbor.Positions {
							grid[p[0]][p[1]] = cell
						}
						changed = true
					}
				}
			}
		}
	}

	seen := map[*Cell]bool{}
	var out []*Cell
	for _, row := range grid {
		for _, c := range row {
			if c != nil && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// detectHeaders implements step 4: a thick separator line (>=0.9x
// the thickest horizontal line) marks the header boundary; otherwise a
// bold-character-fraction threshold over the top rows does, with a
// two-row-table special case.
func detectHeaders(t *Table, opts BuildOptions) {
	maxWidth := 0.0
	for _, h := range opts.HLines {
		if h.Width > maxWidth {
			maxWidth = h.Width
		}
	}
	headerRow := -1
	if maxWidth > 0 {
		bestY := -1e18
		for _, h := range opts.HLines {
			if h.Width >= 0.9*maxWidth {
				if idx, ok := nearestIndex(t.YPos, h.Y, em(opts.XEm, opts.YEm)); ok && t.YPos[idx] > bestY {
					bestY = t.YPos[idx]
					headerRow = idx
				}
			}
		}
	}
	if headerRow < 0 && opts.IsBold != nil {
		for r := 0; r < t.Rows(); r++ {
			frac := boldFractionInRow(t, r, opts.IsBold)
			th := opts.BoldFrac
			if th == 0 {
				th = 0.33
			}
			if frac > th {
				headerRow = r + 1
			} else {
				break
			}
		}
		if t.Rows() == 2 && headerRow < 0 {
			headerRow = 1
		}
	}
	if headerRow <= 0 {
		return
	}
	for _, c := range t.Cells {
		if c.RowMax() < headerRow {
			c.IsHeader = true
		}
	}
}

func boldFractionInRow(t *Table, row int, isBold func(geom.Rectangle) bool) float64 {
	total, bold := 0, 0
	for _, c := range t.Cells {
		if c.RowMin() != row {
			continue
		}
		total++
		if isBold(c.BBox()) {
			bold++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(bold) / float64(total)
}
