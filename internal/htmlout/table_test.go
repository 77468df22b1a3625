package htmlout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/table"
)

func TestFormatHTMLTableRendersSimpleCellsAsGrid(t *testing.T) {
	bbox := geom.NewRectangle(0, 0, 20, 20)
	cells := []*table.Cell{
		{Positions: [][2]int{{0, 0}}, SourceBBoxes: []geom.Rectangle{bbox}, IsSimple: true},
		{Positions: [][2]int{{0, 1}}, SourceBBoxes: []geom.Rectangle{bbox}, IsSimple: true},
	}
	tbl := table.NewVirtualTable(bbox, cells, 2, 1)

	document := docast.NewNode(docast.KindDocument)
	tableNode := docast.NewNode(docast.KindTable)
	tableNode.Table = tbl
	document.Append(tableNode)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<tr>")
	require.Contains(t, out, "<td")
}

func TestFormatHTMLTableSetsRegisterClass(t *testing.T) {
	bbox := geom.NewRectangle(0, 0, 20, 20)
	cells := []*table.Cell{
		{Positions: [][2]int{{0, 0}}, SourceBBoxes: []geom.Rectangle{bbox}, IsSimple: true},
	}
	tbl := table.NewVirtualTable(bbox, cells, 1, 1)
	tbl.Kind = table.KindRegister

	document := docast.NewNode(docast.KindDocument)
	tableNode := docast.NewNode(docast.KindTable)
	tableNode.Table = tbl
	document.Append(tableNode)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, `class="rt"`)
}
