package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestMergeAreaAttachesHeadingRootedContentUnderDocumentRoot(t *testing.T) {
	area := docast.NewNode(docast.KindArea)
	heading := docast.NewNode(docast.KindHead1)
	body := docast.NewNode(docast.KindPara)
	area.Append(heading)
	area.Append(body)

	m := NewMerger()
	m.MergeArea(area, 6)

	if len(m.Root.Children) != 1 || m.Root.Children[0] != heading {
		t.Fatalf("want heading attached directly under root, got %+v", m.Root.Children)
	}
	if len(heading.Children) != 1 || heading.Children[0] != body {
		t.Fatalf("want trailing content nested under the heading, got %+v", heading.Children)
	}
}

func TestMergeAreaHostsLeadingContentUnderPriorHeading(t *testing.T) {
	m := NewMerger()
	firstArea := docast.NewNode(docast.KindArea)
	heading := docast.NewNode(docast.KindHead1)
	firstArea.Append(heading)
	m.MergeArea(firstArea, 6)

	secondArea := docast.NewNode(docast.KindArea)
	continuation := docast.NewNode(docast.KindPara)
	secondArea.Append(continuation)
	m.MergeArea(secondArea, 6)

	if continuation.Parent != heading {
		t.Fatalf("want continuation hosted under the still-open heading, got parent %v", continuation.Parent)
	}
}
