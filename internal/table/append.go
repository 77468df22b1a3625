package table

import "github.com/mcudoc/refdoc/internal/geom"

// NewVirtualTable builds a Table directly from a cell list and bbox, with
// no source grid lines, used by the document normalizer to fold register
// bit descriptions into a synthetic two-column table.
func NewVirtualTable(bbox geom.Rectangle, cells []*Cell, cols, rows int) *Table {
	xpos := make([]float64, cols+1)
	for i := range xpos {
		xpos[i] = bbox.Left + (bbox.Right-bbox.Left)*float64(i)/float64(cols)
	}
	ypos := make([]float64, rows+1)
	for i := range ypos {
		ypos[i] = bbox.Top - (bbox.Top-bbox.Bottom)*float64(i)/float64(rows)
	}
	return &Table{
		BBox: bbox,
		Kind: KindVirtual,
		XPos: xpos,
		YPos: ypos,
		Cells: cells,
		BitHeaderRow: -1,
	}
}

// xHeaderGroups maps each header column to the set of column positions
// sharing it, used by AppendBottom to detect and realign header skeletons
// before merging a continuation table.
func (t *Table) xHeaderGroups() map[int]map[int]bool {
	out := map[int]map[int]bool{}
	headerRows := t.HeaderRows()
	for _, c := range t.Cells {
		if c.RowMax() >= headerRows {
			continue
		}
		for col := c.ColMin(); col <= c.ColMax(); col++ {
			if out[c.ColMin()] == nil {
				out[c.ColMin()] = map[int]bool{}
			}
			out[c.ColMin()][col] = true
		}
	}
	return out
}

// AppendBottom merges a continuation table beneath t: when mergeHeaders is
// set and the column counts differ, the two header skeletons must align
// group-for-group or the merge is refused (returned as a StructuralError
// so the normalizer can keep both tables separately rather than produce a
// mismatched merge).
func (t *Table) AppendBottom(other *Table, mergeHeaders bool) (*Table, error) {
	if mergeHeaders && t.Cols() != other.Cols() {
		selfGroups := t.xHeaderGroups()
		otherGroups := other.xHeaderGroups()
		if len(selfGroups) != len(otherGroups) {
			return nil, &StructuralError{Reason: "table continuation header skeleton does not match"}
		}
		remapHeaderGroups(t, selfGroups, otherGroups)
		remapHeaderGroups(other, otherGroups, selfGroups)
	}

	dropHeaderRows := 0
	if mergeHeaders {
		dropHeaderRows = other.HeaderRows()
	}

	merged := &Table{
		BBox: t.BBox.Joined(other.BBox),
		Kind: t.Kind,
		XPos: t.XPos,
		BitHeaderRow: -1,
		charProvider: t.charProvider,
	}
	merged.YPos = append(append([]float64{}, t.YPos...), other.YPos[1:]...)

	merged.Cells = append(merged.Cells, t.Cells...)
	rowOffset := t.Rows()
	for _, c := range other.Cells {
		if c.RowMax() < dropHeaderRows {
			continue
		}
		nc := *c
		nc.Positions = append([][2]int{}, c.Positions...)
		for i := range nc.Positions {
			nc.Positions[i][0] += rowOffset - dropHeaderRows
		}
		merged.Cells = append(merged.Cells, &nc)
	}
	return merged, nil
}

// remapHeaderGroups rewrites t's cell column positions, in reverse column
// order to avoid overwriting, so that each of t's header groups has the
// size of its matched counterpart in other.
func remapHeaderGroups(t *Table, self, other map[int]map[int]bool) {
	selfCols := sortedKeys(self)
	otherCols := sortedKeys(other)
	if len(selfCols) != len(otherCols) {
		return
	}
	for i := len(selfCols) - 1; i >= 0; i-- {
		wantSize := len(other[otherCols[i]])
		haveSize := len(self[selfCols[i]])
		if wantSize == haveSize {
			continue
		}
		shift := wantSize - haveSize
		for _, c := range t.Cells {
			if c.ColMin() >= selfCols[i] {
				c.move(0, shift)
			}
		}
	}
}

func sortedKeys(m map[int]map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// AppendSide merges a side-by-side continuation table to the right of t.
// If row counts differ and expand is set, the shorter table's bottom row
// is vertically expanded to match.
func (t *Table) AppendSide(other *Table, expand bool) (*Table, error) {
	a, b := t, other
	if expand && a.Rows() != b.Rows() {
		expandBottomRow(a, maxInt(a.Rows(), b.Rows()))
		expandBottomRow(b, maxInt(a.Rows(), b.Rows()))
	} else if a.Rows() != b.Rows() {
		return nil, &StructuralError{Reason: "side-by-side table row counts do not match"}
	}

	merged := &Table{
		BBox: a.BBox.Joined(b.BBox),
		Kind: a.Kind,
		YPos: a.YPos,
		BitHeaderRow: -1,
		charProvider: a.charProvider,
	}
	merged.XPos = append(append([]float64{}, a.XPos...), b.XPos[1:]...)
	merged.Cells = append(merged.Cells, a.Cells...)
	colOffset := a.Cols()
	for _, c := range b.Cells {
		nc := *c
		nc.Positions = append([][2]int{}, c.Positions...)
		for i := range nc.Positions {
			nc.Positions[i][1] += colOffset
		}
		merged.Cells = append(merged.Cells, &nc)
	}
	return merged, nil
}

func expandBottomRow(t *Table, targetRows int) {
	if t.Rows() >= targetRows {
		return
	}
	lastRow := t.Rows() - 1
	for _, c := range t.Cells {
		if c.RowMax() == lastRow {
			for r := lastRow + 1; r < targetRows; r++ {
				for col := c.ColMin(); col <= c.ColMax(); col++ {
					c.Positions = append(c.Positions, [2]int{r, col})
				}
			}
			c.invalidate()
		}
	}
	extra := t.YPos[len(t.YPos)-1] - (t.YPos[len(t.YPos)-1]-t.YPos[len(t.YPos)-2])*float64(targetRows-t.Rows())
	for i := 0; i < targetRows-(len(t.YPos)-1); i++ {
		t.YPos = append(t.YPos, extra)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
