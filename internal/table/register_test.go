package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// TestNewTableRegisterGridRewriteShiftsLowerHalfAndFixesGridSize builds a
// register table drawn as two stacked 16-bit halves (its own bit-number
// header row above the table, and a second one inside the grid), and checks
// that rewriteRegisterPositions folds the lower half into the upper
// half's column space instead of leaving it overlapping at columns 0-15.
func TestNewTableRegisterGridRewriteShiftsLowerHalfAndFixesGridSize(t *testing.T) {
	bbox := geom.NewRectangle(100, 0, 1700, 1000)

	var chars []pdfmodel.Character
	for i := 0; i < 16; i++ {
		x := float64(100*(i+1)) - 3
		chars = append(chars, pdfmodel.NewTestCharacter(rune('0'+i%10), x, 1020, 0))
	}
	// Second bit-number row inside the grid itself (the lower half's own
	// header), at row 1 of the pre-rewrite 3-row grid.
	chars = append(chars,
		pdfmodel.NewTestCharacter('1', 110, 450, 0),
		pdfmodel.NewTestCharacter('0', 1600, 450, 0),
	)
	cp := &fakeCharProvider{chars: chars}

	caption := geom.NewRectangle(100, 1000, 1700, 1060)
	opts := BuildOptions{
		VLines: registerTestVLines(),
		HLines: registerTestHLines(),
		Caption: &caption,
		IsRegister: true,
		XEm: 240, YEm: 240,
	}

	tbl, err := NewTable(bbox, opts, cp)
	require.NoError(t, err)

	require.Equal(t, 32, tbl.Cols(), "register rewrite must fix the grid to 32 columns")
	require.Equal(t, 4, tbl.Rows(), "register rewrite must fix the grid to 4 rows")
	require.Equal(t, 1, tbl.BitHeaderRow)

	var bar *Cell
	for _, c := range tbl.Cells {
		if c.ColSpan() == 4 {
			bar = c
		}
	}
	require.NotNil(t, bar, "expected the lower half's merged bit-name cell to survive the rewrite")
	require.Equal(t, 1, bar.RowMin())
	require.Equal(t, 1, bar.RowMax())
	require.Equal(t, 28, bar.ColMin())
	require.Equal(t, 31, bar.ColMax())
}

// registerTestVLines closes every column boundary except the three between
// columns 12-15 in the lower (row 2) band, so those four columns merge into
// one cell there the way a borderless bit-name box would.
func registerTestVLines() []geom.VLine {
	var vl []geom.VLine
	for _, x := range []float64{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100, 1200, 1300, 1700} {
		vl = append(vl, geom.VLine{X: x, Y0: 0, Y1: 1000, Width: 1})
	}
	for _, x := range []float64{1400, 1500, 1600} {
		vl = append(vl, geom.VLine{X: x, Y0: 300, Y1: 1000, Width: 1})
	}
	return vl
}

// registerTestHLines gives the grid three rows (header/data and a second
// header), with the table's bottom border stopping short of columns 13-15
// so those columns lack a bottom border and don't block the column merge.
func registerTestHLines() []geom.HLine {
	return []geom.HLine{
		{Y: 1000, X0: 100, X1: 1700, Width: 1},
		{Y: 600, X0: 100, X1: 1700, Width: 1},
		{Y: 300, X0: 100, X1: 1700, Width: 1},
		{Y: 0, X0: 100, X1: 1360, Width: 1},
	}
}

func TestBitNumberCentersFoldsFullwidthDigits(t *testing.T) {
	// "３" "１" "３" "０" - fullwidth forms of "31", spaced as two clusters.
	chars := []pdfmodel.Character{
		pdfmodel.NewTestCharacter('３', 0, 0, 0),
		pdfmodel.NewTestCharacter('１', 10, 0, 0),
		pdfmodel.NewTestCharacter('３', 40, 0, 0),
		pdfmodel.NewTestCharacter('０', 50, 0, 0),
	}
	rect := geom.NewRectangle(0, -1, 100, 12)
	cp := &fakeCharProvider{chars: chars}

	centers := bitNumberCenters(cp, rect)

	require.Len(t, centers, 2, "expected two bit-number clusters to be recognized despite fullwidth digits")
}
