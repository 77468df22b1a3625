// Package docast builds and represents the AST: a tree of
// area/section/heading/paragraph/list/note/caption/table/figure/bit nodes
// assembled from a page's ordered object stream.
package docast

import (
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/table"
)

// Kind is one of the closed set of AST node names lists.
type Kind string

const (
	KindDocument Kind = "document"
	KindChapter Kind = "chapter"
	KindSection Kind = "section"
	KindHead1 Kind = "head1"
	KindHead2 Kind = "head2"
	KindHead3 Kind = "head3"
	KindHead4 Kind = "head4"
	KindPara Kind = "para"
	KindText Kind = "text"
	KindLine Kind = "line"
	KindNewline Kind = "newline"
	KindChars Kind = "chars"
	KindNote Kind = "note"
	KindCaption Kind = "caption"
	KindListA Kind = "lista"
	KindListB Kind = "listb"
	KindListN Kind = "listn"
	KindListS Kind = "lists"
	KindElement Kind = "element"
	KindTable Kind = "table"
	KindFigure Kind = "figure"
	KindBit Kind = "bit"
	KindPage Kind = "page"
	KindArea Kind = "area"
	KindCell Kind = "cell"
)

// Node is an attribute-bag tree node. Canonical names are the closed Kind
// set above; auxiliary fields live in Attrs. A per-variant visitor would be
// a purer design, but we keep the bag because the normalizer
// (internal/normalize) pattern-matches on Kind plus a handful of
// attributes across a couple dozen transforms, and a sum type would just
// move the same branching into type switches with no behavior change.
type Node struct {
	Kind Kind
	Attrs map[string]any
	Children []*Node
	Parent *Node

	Obj *layout.CharLine // set on "line" nodes
	Table *table.Table // set on "table" nodes
	BBox geom.Rectangle // set on "table"/"figure" nodes, page-relative
	XPos float64 // left indent, normalized to the containing area
	Page int // source page number, used to detect register/bit runs split across pages
}

// NewNode allocates a Node of the given kind with an empty attribute bag.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind, Attrs: map[string]any{}}
}

// Append adds child as the last child of n, setting its Parent.
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// LastChild returns the most recently appended child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Attr returns an attribute value, or nil if unset.
func (n *Node) Attr(key string) any { return n.Attrs[key] }

// SetAttr sets an attribute value.
func (n *Node) SetAttr(key string, v any) { n.Attrs[key] = v }

// AttrString returns a string attribute, or "" if unset or not a string.
func (n *Node) AttrString(key string) string {
	s, _ := n.Attrs[key].(string)
	return s
}

// AttrInt returns an int attribute, or 0 if unset or not an int.
func (n *Node) AttrInt(key string) int {
	v, _ := n.Attrs[key].(int)
	return v
}

// Ancestors yields n's ancestors from parent to root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// FindAncestor returns the nearest ancestor (including n itself) for which
// pred returns true, or nil.
func (n *Node) FindAncestor(pred func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// PreOrder calls fn for n and every descendant, in document order.
func (n *Node) PreOrder(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.PreOrder(fn)
	}
}

// RemoveChild removes child from n.Children, if present.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// isHeading reports whether k is one of head1..head4.
func isHeading(k Kind) bool {
	switch k {
	case KindHead1, KindHead2, KindHead3, KindHead4:
		return true
	default:
		return false
	}
}

// headingLevel returns 1..4 for a heading Kind, or 0 otherwise.
func headingLevel(k Kind) int {
	switch k {
	case KindHead1:
		return 1
	case KindHead2:
		return 2
	case KindHead3:
		return 3
	case KindHead4:
		return 4
	default:
		return 0
	}
}

func headingKind(level int) Kind {
	switch level {
	case 1:
		return KindHead1
	case 2:
		return KindHead2
	case 3:
		return KindHead3
	default:
		return KindHead4
	}
}

// isList reports whether k is one of the four list-kind names.
func isList(k Kind) bool {
	switch k {
	case KindListA, KindListB, KindListN, KindListS:
		return true
	default:
		return false
	}
}
