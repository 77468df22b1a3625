package table

import (
	"strings"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
)

// Cell is one (possibly merged) table cell. Positions lists the (row, col)
// pairs the cell covers, in no particular order; together they form a
// contiguous axis-aligned rectangle.
type Cell struct {
	Positions   [][2]int
	SourceBBoxes []geom.Rectangle
	Borders     Borders
	IsHeader    bool
	IsSimple    bool

	table *Table // owning table, for charProvider access

	bbox       geom.Rectangle
	bboxValid  bool
	lines      []layout.CharLine
	linesValid bool
}

func newCell(row, col int, bbox geom.Rectangle, b Borders, t *Table) *Cell {
	return &Cell{
		Positions:    [][2]int{{row, col}},
		SourceBBoxes: []geom.Rectangle{bbox},
		Borders:      b,
		table:        t,
	}
}

// invalidate clears every cached derived attribute; called by any mutation
// that can change the cell's bbox or contained lines.
func (c *Cell) invalidate() {
	c.bboxValid = false
	c.linesValid = false
}

// RowMin, RowMax, ColMin, ColMax return the cell's occupied span.
func (c *Cell) RowMin() int {
	m := c.Positions[0][0]
	for _, p := range c.Positions {
		if p[0] < m {
			m = p[0]
		}
	}
	return m
}
func (c *Cell) RowMax() int {
	m := c.Positions[0][0]
	for _, p := range c.Positions {
		if p[0] > m {
			m = p[0]
		}
	}
	return m
}
func (c *Cell) ColMin() int {
	m := c.Positions[0][1]
	for _, p := range c.Positions {
		if p[1] < m {
			m = p[1]
		}
	}
	return m
}
func (c *Cell) ColMax() int {
	m := c.Positions[0][1]
	for _, p := range c.Positions {
		if p[1] > m {
			m = p[1]
		}
	}
	return m
}

// RowSpan and ColSpan return the cell's extent in grid units.
func (c *Cell) RowSpan() int { return c.RowMax() - c.RowMin() + 1 }
func (c *Cell) ColSpan() int { return c.ColMax() - c.ColMin() + 1 }

// merge absorbs other into c: positions and source bboxes accumulate, and
// borders widen to the union's outer edge on each side that doesn't face
// the other cell.
func (c *Cell) merge(other *Cell, direction string) {
	c.Positions = append(c.Positions, other.Positions...)
	c.SourceBBoxes = append(c.SourceBBoxes, other.SourceBBoxes...)
	switch direction {
	case "right":
		c.Borders.Right = other.Borders.Right
	case "top":
		c.Borders.Top = other.Borders.Top
	}
	c.invalidate()
}

// move shifts every position by (dRow, dCol), used by the register-table
// rewrite and by AppendBottom's header realignment (remapHeaderGroups).
func (c *Cell) move(dRow, dCol int) {
	for i := range c.Positions {
		c.Positions[i][0] += dRow
		c.Positions[i][1] += dCol
	}
	c.invalidate()
}

// BBox returns the join of the cell's source bboxes, cached until the next
// mutation.
func (c *Cell) BBox() geom.Rectangle {
	if !c.bboxValid {
		c.bbox = geom.JoinAll(c.SourceBBoxes)
		c.bboxValid = true
	}
	return c.bbox
}

// Lines returns the CharLines found inside the cell's bbox, cached until
// the next mutation.
func (c *Cell) Lines() []layout.CharLine {
	if !c.linesValid {
		if c.table != nil && c.table.charProvider != nil {
			c.lines = lineAssembler(c.table.charProvider, c.BBox())
		}
		c.linesValid = true
	}
	return c.lines
}

// Content concatenates the cell's lines with newlines between them.
func (c *Cell) Content() string {
	lines := c.Lines()
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Content()
	}
	return strings.Join(parts, "\n")
}

// IsLeftAligned reports whether the cell's first line starts within half
// the cell's height of the cell's left edge, used to decide whether a data cell
// should render with class "tl".
func (c *Cell) IsLeftAligned() bool {
	lines := c.Lines()
	if len(lines) == 0 {
		return true
	}
	bbox := c.BBox()
	return lines[0].BBox().Left-bbox.Left < bbox.Height()*0.5
}
