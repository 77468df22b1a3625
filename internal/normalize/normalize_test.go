package normalize

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestNormalizeRunsFullPipelineOnSimpleHeadingAndParagraph(t *testing.T) {
	document := docast.NewNode(docast.KindDocument)
	heading := docast.NewNode(docast.KindHead1)
	heading.SetAttr("marker", "1")
	titlePara := docast.NewNode(docast.KindPara)
	titlePara.Append(titleLineOf("Overview"))
	heading.Append(titlePara)

	bodyPara := docast.NewNode(docast.KindPara)
	bodyLine := docast.NewNode(docast.KindLine)
	bodyPara.Append(bodyLine)
	heading.Append(bodyPara)

	document.Append(heading)

	Normalize(document)

	if len(document.Children) != 1 || document.Children[0].Kind != docast.KindSection {
		t.Fatalf("want heading renamed to section, got %+v", document.Children)
	}
	section := document.Children[0]
	if len(section.Children) != 2 {
		t.Fatalf("want promoted title plus body paragraph, got %d children", len(section.Children))
	}
	if section.Children[0].Kind != docast.KindHead1 {
		t.Fatalf("want promoted title kind head1, got %s", section.Children[0].Kind)
	}
}
