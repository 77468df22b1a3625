package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestParagraphsUnwrapsSoleParagraphUnderElement(t *testing.T) {
	element := docast.NewNode(docast.KindElement)
	para := docast.NewNode(docast.KindPara)
	text := docast.NewNode(docast.KindText)
	para.Append(text)
	element.Append(para)

	Paragraphs(element)

	if len(element.Children) != 1 || element.Children[0] != text {
		t.Fatalf("want text hoisted directly under element, got %+v", element.Children)
	}
	if text.Parent != element {
		t.Fatalf("want text reparented to element")
	}
}

func TestParagraphsLeavesMultipleParagraphsUnderElementAlone(t *testing.T) {
	element := docast.NewNode(docast.KindElement)
	para1 := docast.NewNode(docast.KindPara)
	para2 := docast.NewNode(docast.KindPara)
	element.Append(para1)
	element.Append(para2)

	Paragraphs(element)

	if len(element.Children) != 2 {
		t.Fatalf("want both paragraphs untouched, got %d", len(element.Children))
	}
}

func TestParagraphsMergesSiblingTextNodesUnderCaption(t *testing.T) {
	caption := docast.NewNode(docast.KindCaption)
	para1 := docast.NewNode(docast.KindPara)
	text1 := docast.NewNode(docast.KindText)
	line1 := docast.NewNode(docast.KindLine)
	text1.Append(line1)
	para1.Append(text1)

	para2 := docast.NewNode(docast.KindPara)
	text2 := docast.NewNode(docast.KindText)
	line2 := docast.NewNode(docast.KindLine)
	text2.Append(line2)
	para2.Append(text2)

	caption.Append(para1)
	caption.Append(para2)

	Paragraphs(caption)

	if len(caption.Children) != 1 {
		t.Fatalf("want merged to single text child, got %d", len(caption.Children))
	}
	merged := caption.Children[0]
	if merged.Kind != docast.KindText || len(merged.Children) != 2 {
		t.Fatalf("want merged text with both lines, got kind=%s children=%d", merged.Kind, len(merged.Children))
	}
}
