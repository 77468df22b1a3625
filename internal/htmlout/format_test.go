package htmlout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

func charLineOf(s string, bold bool) layout.CharLine {
	weight := 400
	if bold {
		weight = 700
	}
	chars := make([]pdfmodel.Character, 0, len(s))
	x := 10.0
	for _, r := range s {
		c := pdfmodel.NewTestCharacterWithFont(r, x, 90, "F1", 10, weight, 0)
		chars = append(chars, c)
		x += 6
	}
	return layout.CharLine{Chars: chars, Bottom: 90, Origin: 95, Top: 100, Height: 10}
}

func renderToString(t *testing.T, root *elem) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, writeDocument(&b, root))
	return b.String()
}

func TestFormatHTMLParagraphRendersPlainText(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	para := docast.NewNode(docast.KindPara)
	text := docast.NewNode(docast.KindText)
	line := charLineOf("Hello", false)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	para.Append(text)
	document.Append(para)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, "<p>")
	require.Contains(t, out, "Hello")
}

func TestFormatHTMLBoldRunProducesNestedSpan(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	para := docast.NewNode(docast.KindPara)
	text := docast.NewNode(docast.KindText)
	line := charLineOf("Bold", true)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	para.Append(text)
	document.Append(para)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, "<b>Bold</b>")
}

func TestFormatHTMLHeadingSetsSectionID(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	heading := docast.NewNode(docast.KindHead1)
	heading.SetAttr("marker", "2")
	text := docast.NewNode(docast.KindText)
	line := charLineOf("Intro", false)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	heading.Append(text)
	document.Append(heading)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, `id="section2"`)
	require.Contains(t, out, "<h1")
}

func TestFormatHTMLListRendersOrderedListWithValue(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	list := docast.NewNode(docast.KindListN)
	item := docast.NewNode(docast.KindElement)
	item.SetAttr("value", 3)
	text := docast.NewNode(docast.KindText)
	line := charLineOf("Third", false)
	lineNode := docast.NewNode(docast.KindLine)
	lineNode.Obj = &line
	text.Append(lineNode)
	item.Append(text)
	list.Append(item)
	document.Append(list)

	out := renderToString(t, FormatDocument(document, "../style.css"))
	require.Contains(t, out, "<ol>")
	require.Contains(t, out, `value="3"`)
}
