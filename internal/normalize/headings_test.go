package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestHeadingsPromotesTitleAndRenamesToSection(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	heading := docast.NewNode(docast.KindHead2)
	heading.SetAttr("marker", "1.2")
	title := docast.NewNode(docast.KindPara)
	text := docast.NewNode(docast.KindText)
	line := docast.NewNode(docast.KindLine)
	text.Append(line)
	title.Append(text)
	heading.Append(title)
	body := docast.NewNode(docast.KindPara)
	heading.Append(body)
	document.Append(heading)

	Headings(document)

	if heading.Kind != docast.KindSection {
		t.Fatalf("want heading renamed to section, got %s", heading.Kind)
	}
	if len(heading.Children) != 2 {
		t.Fatalf("want title promoted in place plus body, got %d children", len(heading.Children))
	}
	promoted := heading.Children[0]
	if promoted.Kind != docast.KindHead2 {
		t.Fatalf("want promoted title kind head2, got %s", promoted.Kind)
	}
	if promoted.AttrString("marker") != "1.2" {
		t.Fatalf("want marker carried over, got %q", promoted.AttrString("marker"))
	}
}

func TestHeadingsDropsEmptyTitle(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	heading := docast.NewNode(docast.KindHead1)
	title := docast.NewNode(docast.KindPara)
	heading.Append(title)
	document.Append(heading)

	Headings(document)

	if len(heading.Children) != 0 {
		t.Fatalf("want empty title dropped, got %d children", len(heading.Children))
	}
}
