package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/table"
)

func virtualTableNode(number int, tableType string, rows int) *docast.Node {
	node := docast.NewNode(docast.KindTable)
	node.SetAttr("table_type", tableType)
	if number > 0 {
		node.SetAttr("number", number)
	}
	bbox := geom.NewRectangle(0, 0, 10, float64(rows)*10)
	cells := make([]*table.Cell, 0, rows)
	for r := 0; r < rows; r++ {
		cells = append(cells, &table.Cell{Positions: [][2]int{{r, 0}}, SourceBBoxes: []geom.Rectangle{bbox}})
	}
	node.Table = table.NewVirtualTable(bbox, cells, 1, rows)
	return node
}

func TestTablesMergesSameNumberedContentTablesVertically(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	first := virtualTableNode(5, "table", 2)
	second := virtualTableNode(5, "table", 3)
	document.Append(first)
	document.Append(second)

	Tables(document)

	if len(document.Children) != 1 {
		t.Fatalf("want continuation absorbed, got %d children", len(document.Children))
	}
	if first.Table.Rows() != 5 {
		t.Fatalf("want 5 merged rows, got %d", first.Table.Rows())
	}
}

func TestTablesLeavesUnrelatedTablesSeparate(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	first := virtualTableNode(1, "table", 2)
	para := docast.NewNode(docast.KindPara)
	second := virtualTableNode(2, "table", 2)
	document.Append(first)
	document.Append(para)
	document.Append(second)

	Tables(document)

	if len(document.Children) != 3 {
		t.Fatalf("want all three siblings kept, got %d", len(document.Children))
	}
}
