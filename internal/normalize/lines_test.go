package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestLinesWrapsParagraphLinesInTextNode(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	para := docast.NewNode(docast.KindPara)
	line := docast.NewNode(docast.KindLine)
	para.Append(line)
	document.Append(para)

	Lines(document)

	if len(para.Children) != 1 || para.Children[0].Kind != docast.KindText {
		t.Fatalf("want single text wrapper, got %+v", para.Children)
	}
	text := para.Children[0]
	if len(text.Children) != 1 || text.Children[0] != line {
		t.Fatalf("want wrapped line preserved, got %+v", text.Children)
	}
}
