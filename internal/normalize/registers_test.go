package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

func bitLineOf(s string, left, top, size float64) layout.CharLine {
	chars := make([]pdfmodel.Character, 0, len(s))
	x := left
	for _, r := range s {
		chars = append(chars, pdfmodel.NewTestCharacterWithFont(r, x, top-size, "F1", size, 400, 0))
		x += size * 0.6
	}
	return layout.CharLine{Chars: chars, Bottom: top - size, Origin: top - size, Top: top, Height: size}
}

func bitNode(text string, page int, xpos, top float64) *docast.Node {
	bit := docast.NewNode(docast.KindBit)
	bit.XPos = xpos
	bit.Page = page
	line := docast.NewNode(docast.KindLine)
	l := bitLineOf(text, xpos, top, 10)
	line.Obj = &l
	bit.Append(line)
	return bit
}

func TestRegistersGroupsConsecutiveBitsOnSamePage(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	document.Append(bitNode("Bit 0: EN", 1, 10, 100))
	document.Append(bitNode("Bit 1: RDY", 1, 10, 88))

	Registers(document)

	if len(document.Children) != 1 {
		t.Fatalf("want single bits wrapper, got %d children", len(document.Children))
	}
	wrapper := document.Children[0]
	if wrapper.AttrString("table_type") != "bits" {
		t.Fatalf("want table_type=bits, got %q", wrapper.AttrString("table_type"))
	}
	if wrapper.Table == nil {
		t.Fatalf("want a built bitfield table")
	}
	if wrapper.Table.Rows() != 2 || wrapper.Table.Cols() != 2 {
		t.Fatalf("want 2x2 table, got %dx%d", wrapper.Table.Rows(), wrapper.Table.Cols())
	}
}

func TestRegistersBreaksRunAcrossPageBoundary(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	document.Append(bitNode("Bit 0: EN", 1, 10, 100))
	document.Append(bitNode("Bit 1: RDY", 2, 10, 88))

	Registers(document)

	if len(document.Children) != 2 {
		t.Fatalf("want two separate bits wrappers across the page break, got %d", len(document.Children))
	}
}
