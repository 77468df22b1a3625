package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

func titleLineOf(s string) *docast.Node {
	chars := make([]pdfmodel.Character, 0, len(s))
	for i, r := range s {
		chars = append(chars, pdfmodel.NewTestCharacterWithFont(r, float64(i)*6, 90, "F1", 10, 700, 0))
	}
	l := layout.CharLine{Chars: chars, Bottom: 90, Origin: 90, Top: 100, Height: 10}
	line := docast.NewNode(docast.KindLine)
	line.Obj = &l
	return line
}

func sectionWithHeading(kind docast.Kind, title string) *docast.Node {
	section := docast.NewNode(docast.KindSection)
	heading := docast.NewNode(kind)
	text := docast.NewNode(docast.KindText)
	text.Append(titleLineOf(title))
	heading.Append(text)
	section.Append(heading)
	section.Append(docast.NewNode(docast.KindPara))
	return section
}

func TestChaptersSplitsAtHead1Boundaries(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	document.Append(sectionWithHeading(docast.KindHead1, "Introduction"))
	document.Append(sectionWithHeading(docast.KindHead1, "Registers"))

	Chapters(document)

	if len(document.Children) != 2 {
		t.Fatalf("want 2 chapters, got %d", len(document.Children))
	}
	for _, ch := range document.Children {
		if ch.Kind != docast.KindChapter {
			t.Fatalf("want chapter kind, got %s", ch.Kind)
		}
		if ch.AttrString("filename") == "" {
			t.Fatalf("want a derived filename")
		}
	}
	if document.Children[0].AttrString("title") != "0 Introduction" {
		t.Fatalf("want head1 title prefixed with 0, got %q", document.Children[0].AttrString("title"))
	}
}

func TestChaptersLeavesDocumentUntouchedWithNoHeadings(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	document.Append(docast.NewNode(docast.KindPara))

	Chapters(document)

	if len(document.Children) != 1 || document.Children[0].Kind != docast.KindPara {
		t.Fatalf("want document unchanged, got %+v", document.Children)
	}
}
