package docast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// kindColumn is the label column width the dump aligns attributes to.
const kindColumn = 10

// Dump renders an indented recursive listing of n, one line per node, used
// by the --ast/--tree CLI flags. Kind labels are padded to a common column
// with go-runewidth so East-Asian-width caption text embedded in
// attributes (table_type, caption numbers pulled from double-byte
// datasheet titles) doesn't skew the indent column.
func Dump(n *Node) string {
	var b strings.Builder
	dump(n, 0, &b)
	return b.String()
}

func dump(n *Node, depth int, b *strings.Builder) {
	label := string(n.Kind)
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label)
	if pad := kindColumn - runewidth.StringWidth(label); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if attrs := sortedAttrs(n); attrs != "" {
		fmt.Fprintf(b, " %s", attrs)
	}
	if n.Obj != nil {
		fmt.Fprintf(b, " %q", n.Obj.Content())
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		dump(c, depth+1, b)
	}
}

func sortedAttrs(n *Node) string {
	if len(n.Attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, n.Attrs[k]))
	}
	return strings.Join(parts, " ")
}
