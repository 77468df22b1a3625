package docast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/classify"
)

func TestDumpIndentsChildrenAndListsAttrsSorted(t *testing.T) {
	root := NewNode(KindTable)
	root.SetAttr("table_type", "register")
	root.SetAttr("number", 3)
	child := NewNode(KindCell)
	root.Append(child)

	out := Dump(root)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "table")
	require.Contains(t, lines[0], "number=3")
	require.Contains(t, lines[0], "table_type=register")
	require.True(t, strings.HasPrefix(lines[1], "  "), "expected child line indented")
	require.Contains(t, lines[1], "cell")
}

func TestDumpIncludesLineContent(t *testing.T) {
	area := NewNode(KindArea)
	st := &builderState{area: area, current: area, tmpl: classify.BlackWhite{}}
	appendLine(st, lineOf("Hello world", 10, 100, 10, false), testSpacing)

	out := Dump(area)
	require.Contains(t, out, "Hello world")
}

