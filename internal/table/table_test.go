package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

type fakeCharProvider struct {
	chars []pdfmodel.Character
}

func (f *fakeCharProvider) CharsInArea(rect geom.Rectangle) []pdfmodel.Character {
	var out []pdfmodel.Character
	for _, c := range f.chars {
		if rect.ContainsPoint(c.Origin) {
			out = append(out, c)
		}
	}
	return out
}

func TestNewTableTwoByTwoWithExplicitBorders(t *testing.T) {
	bbox := geom.NewRectangle(0, 0, 100, 40)
	opts := BuildOptions{
		VLines: []geom.VLine{
			{X: 0, Y0: 0, Y1: 40, Width: 1},
			{X: 50, Y0: 0, Y1: 40, Width: 1},
			{X: 100, Y0: 0, Y1: 40, Width: 1},
		},
		HLines: []geom.HLine{
			{Y: 0, X0: 0, X1: 100, Width: 1},
			{Y: 20, X0: 0, X1: 100, Width: 3},
			{Y: 40, X0: 0, X1: 100, Width: 1},
		},
		XEm: 4, YEm: 4,
		IsBold: func(geom.Rectangle) bool { return false },
	}
	tbl, err := NewTable(bbox, opts, &fakeCharProvider{})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Cols())
	require.Equal(t, 2, tbl.Rows())
	require.Len(t, tbl.Cells, 4)
	require.Equal(t, 1, tbl.HeaderRows(), "expected thick middle line to mark row 0 as header")
}

func TestCellsPartitionTheGrid(t *testing.T) {
	bbox := geom.NewRectangle(0, 0, 90, 30)
	opts := BuildOptions{
		VLines: []geom.VLine{{X: 0, Y0: 0, Y1: 30}, {X: 30, Y0: 0, Y1: 30}, {X: 60, Y0: 0, Y1: 30}, {X: 90, Y0: 0, Y1: 30}},
		HLines: []geom.HLine{{Y: 0, X0: 0, X1: 90}, {Y: 30, X0: 0, X1: 90}},
		XEm:    4, YEm: 4,
	}
	tbl, err := NewTable(bbox, opts, &fakeCharProvider{})
	require.NoError(t, err)
	total := 0
	seen := map[[2]int]bool{}
	for _, c := range tbl.Cells {
		total += c.RowSpan() * c.ColSpan()
		for _, p := range c.Positions {
			require.False(t, seen[p], "position %v claimed by more than one cell", p)
			seen[p] = true
		}
	}
	require.Equal(t, tbl.Cols()*tbl.Rows(), total, "cells do not partition the grid")
}
