package docast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/classify"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

func lineOf(s string, left, top, size float64, bold bool) layout.CharLine {
	weight := 400
	if bold {
		weight = 700
	}
	chars := make([]pdfmodel.Character, 0, len(s))
	x := left
	for _, r := range s {
		chars = append(chars, pdfmodel.NewTestCharacterWithFont(r, x, top-size, "F1", size, weight, 0))
		x += size * 0.6
	}
	return layout.CharLine{
		Chars:  chars,
		Bottom: top - size,
		Origin: top - size,
		Top:    top,
		Height: size,
	}
}

var testSpacing = classify.Spacing{XEm: 6, XContent: 10, LH: 1.2, SC: 0.35, TH: 0.33}

func TestConsecutiveLinesJoinOneParagraph(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("First line of text.", 10, 100, 10, false), testSpacing)
	appendLine(st, lineOf("Second line continues.", 10, 88, 10, false), testSpacing)

	require.Len(t, area.Children, 1)
	require.Equal(t, KindPara, area.Children[0].Kind)
	require.Len(t, area.Children[0].Children, 2)
}

func TestBlankGapStartsNewParagraph(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("First paragraph.", 10, 100, 10, false), testSpacing)
	// Large vertical gap simulates a blank line between paragraphs.
	appendLine(st, lineOf("Second paragraph.", 10, 50, 10, false), testSpacing)

	require.Len(t, area.Children, 2)
	for _, c := range area.Children {
		require.Equal(t, KindPara, c.Kind)
	}
}

func TestNumberedHeadingOpensHeadingNode(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("1 Introduction", 10, 100, 20, true), testSpacing)

	require.Len(t, area.Children, 1)
	require.Equal(t, KindHead1, area.Children[0].Kind)
	require.Equal(t, "1", area.Children[0].AttrString("marker"))
	para := area.Children[0].LastChild()
	require.NotNil(t, para)
	require.Equal(t, KindPara, para.Kind)
}

func TestBodyTextAfterHeadingAttachesToHeadingNotTitle(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("1 Introduction", 10, 100, 20, true), testSpacing)
	appendLine(st, lineOf("Body text explaining things.", 10, 70, 10, false), testSpacing)

	require.Len(t, area.Children, 1)
	require.Equal(t, KindHead1, area.Children[0].Kind)
	heading := area.Children[0]
	require.Len(t, heading.Children, 2, "expected heading to hold title para + body para")
	require.Equal(t, KindPara, heading.Children[0].Kind)
	require.Len(t, heading.Children[0].Children, 1, "expected title para with one line")
	require.Equal(t, KindPara, heading.Children[1].Kind)
}

func TestBulletedListCreatesListItems(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("•Item one", 10, 100, 10, false), testSpacing)
	appendLine(st, lineOf("•Item two", 10, 85, 10, false), testSpacing)

	require.Len(t, area.Children, 2)
	for _, c := range area.Children {
		require.Equal(t, KindListB, c.Kind)
	}
}

func TestNoteLineOpensNoteNode(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}

	appendLine(st, lineOf("Note: remember this.", 10, 100, 10, false), testSpacing)

	require.Len(t, area.Children, 1)
	require.Equal(t, KindNote, area.Children[0].Kind)
	require.Equal(t, "note", area.Children[0].AttrString("type"))
}

func TestMarkFirstLeafWithPageInsertsSyntheticPageNode(t *testing.T) {
	area := NewNode(KindArea)
	para := area.Append(NewNode(KindPara))
	para.Append(NewNode(KindLine))

	markFirstLeafWithPage(area, 7)

	require.Len(t, para.Children, 2)
	require.Equal(t, KindPage, para.Children[0].Kind)
	require.Equal(t, 7, para.Children[0].AttrInt("number"))
}

func TestAssembleFlattensAreaWrappersInPageOrder(t *testing.T) {
	area1 := NewNode(KindArea)
	area1.Append(NewNode(KindPara))
	area2 := NewNode(KindArea)
	area2.Append(NewNode(KindPara))
	area2.Append(NewNode(KindNote))

	document := Assemble([][]*Node{{area1}, {area2}})

	require.Equal(t, KindDocument, document.Kind)
	require.Len(t, document.Children, 3)
	require.Equal(t, KindPara, document.Children[0].Kind)
	require.Equal(t, KindPara, document.Children[1].Kind)
	require.Equal(t, KindNote, document.Children[2].Kind)
	for _, c := range document.Children {
		require.Same(t, document, c.Parent)
	}
}

