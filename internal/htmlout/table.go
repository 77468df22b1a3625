package htmlout

import (
	"strconv"
	"strings"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/table"
)

// formatHTMLTable renders a table node's caption (if reattached) and grid,
// classifying register/bitfield tables via CSS class and rendering each
// cell either as plain stripped text (simple cells) or as formatted inline
// content built directly from the cell's own lines.
func formatHTMLTable(xmlnode *elem, tableNode *docast.Node) {
	tnode := xmlnode.SubElement("table")
	if tableNode.Table == nil {
		return
	}
	t := tableNode.Table

	var caption *docast.Node
	for _, c := range tableNode.Children {
		if c.Kind == docast.KindCaption {
			caption = c
			break
		}
	}
	if caption != nil {
		tnode.SetAttr("id", "table"+strconv.Itoa(caption.AttrInt("number")))
		capElem := tnode.SubElement("caption")
		FormatHTML(capElem, caption, nil, true)
	}
	switch t.Kind {
	case table.KindRegister:
		tnode.SetAttr("class", "rt")
	case table.KindBitfield:
		tnode.SetAttr("class", "bt")
	}

	headerRows := t.HeaderRows()
	rowsByY := groupCellsByRow(t.Cells)
	for _, row := range rowsByY {
		rowElem := tnode.SubElement("tr")
		for _, cell := range row {
			renderCell(rowElem, cell, t, headerRows)
		}
	}
}

func groupCellsByRow(cells []*table.Cell) [][]*table.Cell {
	byRow := map[int][]*table.Cell{}
	var rows []int
	for _, c := range cells {
		y := c.RowMin()
		if _, ok := byRow[y]; !ok {
			rows = append(rows, y)
		}
		byRow[y] = append(byRow[y], c)
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j-1] > rows[j]; j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
	out := make([][]*table.Cell, len(rows))
	for i, y := range rows {
		out[i] = byRow[y]
	}
	return out
}

func renderCell(rowElem *elem, cell *table.Cell, t *table.Table, headerRows int) {
	tag := "td"
	if cell.IsHeader {
		tag = "th"
	}
	xynode := rowElem.SubElement(tag)
	if span := cell.ColSpan(); span > 1 {
		xynode.SetAttr("colspan", strconv.Itoa(span))
	}
	if span := cell.RowSpan(); span > 1 {
		xynode.SetAttr("rowspan", strconv.Itoa(span))
	}
	var classes []string
	if t.Kind != table.KindRegister && cell.IsLeftAligned() {
		classes = append(classes, "tl")
	}
	if cell.RowMax()+1 == headerRows {
		classes = append(classes, "thb")
	}
	if len(classes) > 0 {
		xynode.SetAttr("class", strings.Join(classes, " "))
	}

	target := xynode
	if lines := cell.Lines(); len(lines) > 0 && lines[0].Rotation != 0 {
		target = xynode.SubElement("span")
		target.SetAttr("class", "tv")
	}
	if cell.IsSimple {
		target.Text = strings.TrimSpace(cell.Content())
		return
	}
	textNode := docast.NewNode(docast.KindText)
	for _, line := range cell.Lines() {
		l := line
		lineNode := docast.NewNode(docast.KindLine)
		lineNode.Obj = &l
		textNode.Append(lineNode)
	}
	ignore := map[string]bool{}
	if cell.IsHeader {
		ignore["bold"] = true
	}
	formatHTMLText(target, textNode, ignore, true)
}
