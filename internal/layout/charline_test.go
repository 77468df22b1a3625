package layout

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

func charAt(x, y float64, r rune) pdfmodel.Character {
	return pdfmodel.NewTestCharacter(r, x, y, 0)
}

func TestCharLinesInAreaSingleHorizontalLine(t *testing.T) {
	chars := []pdfmodel.Character{
		charAt(10, 700, 'H'),
		charAt(16, 700, 'i'),
	}
	lines := CharLinesInArea(chars, 792, DefaultSpacing)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Content(); got != "Hi" {
		t.Fatalf("expected reading-order content Hi, got %q", got)
	}
}

func TestCharLineBottomOriginTopOrdering(t *testing.T) {
	chars := []pdfmodel.Character{charAt(0, 100, 'A')}
	lines := CharLinesInArea(chars, 792, DefaultSpacing)
	for _, l := range lines {
		if !(l.Bottom <= l.Origin+1e-6 && l.Origin <= l.Top+1e-6) {
			t.Fatalf("expected bottom<=origin<=top, got %+v", l)
		}
	}
}

func TestClustersSplitOnWideGap(t *testing.T) {
	l := CharLine{
		Chars: []pdfmodel.Character{
			charAt(0, 0, 'A'),
			charAt(1, 0, 'B'),
			charAt(100, 0, 'C'),
		},
		Height: 10,
	}
	clusters := l.Clusters(5)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %+v", len(clusters), clusters)
	}
}
