package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestCaptionsReattachesToFollowingTable(t *testing.T) {
	section := docast.NewNode(docast.KindSection)
	caption := docast.NewNode(docast.KindCaption)
	caption.SetAttr("caption_type", "table")
	caption.SetAttr("number", 3)
	para := docast.NewNode(docast.KindPara)
	caption.Append(para)

	table := docast.NewNode(docast.KindTable)

	section.Append(caption)
	section.Append(table)

	Captions(section)

	if len(section.Children) != 1 || section.Children[0] != table {
		t.Fatalf("want caption removed from section, table left, got %+v", section.Children)
	}
	if len(table.Children) != 1 || table.Children[0] != caption {
		t.Fatalf("want caption reparented under table, got %+v", table.Children)
	}
	if table.AttrInt("number") != 3 {
		t.Fatalf("want number copied to table, got %d", table.AttrInt("number"))
	}
}

func TestCaptionsDropsUnmatchedCaption(t *testing.T) {
	section := docast.NewNode(docast.KindSection)
	caption := docast.NewNode(docast.KindCaption)
	caption.SetAttr("caption_type", "figure")
	para := docast.NewNode(docast.KindPara)
	caption.Append(para)
	section.Append(caption)
	section.Append(docast.NewNode(docast.KindTable))

	Captions(section)

	for _, c := range section.Children {
		if c.Kind == docast.KindCaption {
			t.Fatalf("want unmatched figure caption dropped, found one")
		}
	}
}
