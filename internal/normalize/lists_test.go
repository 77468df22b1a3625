package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestListsGroupsConsecutiveSiblingsOfSameKind(t *testing.T) {
	para := docast.NewNode(docast.KindPara)
	item1 := docast.NewNode(docast.KindListB)
	item2 := docast.NewNode(docast.KindListB)
	para.Append(item1)
	para.Append(item2)

	Lists(para)

	if len(para.Children) != 1 {
		t.Fatalf("want 1 wrapper child, got %d", len(para.Children))
	}
	wrapper := para.Children[0]
	if wrapper.Kind != docast.KindListB {
		t.Fatalf("want wrapper kind listb, got %s", wrapper.Kind)
	}
	if len(wrapper.Children) != 2 {
		t.Fatalf("want 2 elements, got %d", len(wrapper.Children))
	}
	for _, c := range wrapper.Children {
		if c.Kind != docast.KindElement {
			t.Fatalf("want element kind, got %s", c.Kind)
		}
	}
}

func TestListsLeavesNonListSiblingsUngrouped(t *testing.T) {
	section := docast.NewNode(docast.KindSection)
	para1 := docast.NewNode(docast.KindPara)
	para2 := docast.NewNode(docast.KindPara)
	section.Append(para1)
	section.Append(para2)

	Lists(section)

	if len(section.Children) != 2 {
		t.Fatalf("want 2 untouched children, got %d", len(section.Children))
	}
}
