// Package normalize assembles per-page AST fragments into one document
// tree and reshapes it into its final form: merging areas across pages,
// folding paragraphs/lists/captions/headings/registers/tables into their
// canonical shapes, and optionally splitting the result into chapters.
package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Merger accumulates successive pages' content areas into a single
// document tree, tracking a "current end" insertion point so each new
// page's content is appended in the right place.
type Merger struct {
	Root *docast.Node
	end  *docast.Node
}

// NewMerger starts a fresh document with a single root node.
func NewMerger() *Merger {
	root := docast.NewNode(docast.KindDocument)
	return &Merger{Root: root, end: root}
}

// MergeArea splices one content area's children into the document,
// aligning non-heading leading content with the nearest preceding heading
// (or, for lists, the nearest ancestor at a matching indent), then
// attaching the area's first heading-rooted subtree directly under the
// document root, with every child after it appended under that heading. xEm is the area template's one-em
// width, used for the list-indent host search.
func (m *Merger) MergeArea(area *docast.Node, xEm float64) {
	if len(area.Children) == 0 {
		return
	}
	normalizeArea(area)
	children := append([]*docast.Node(nil), area.Children...)

	connectIndex := len(children)
	for i, c := range children {
		if isHeadingKind(c.Kind) {
			connectIndex = i
			break
		}
	}

	for _, child := range children[:connectIndex] {
		var host *docast.Node
		switch {
		case isListKind(child.Kind):
			host = m.findAncestor(func(c *docast.Node) bool {
				d := c.XPos - child.XPos
				return (-4*xEm < d && d < -xEm) || isHeadingKind(c.Kind)
			})
		case child.Kind == docast.KindPara && m.end.Kind == docast.KindNote &&
			len(child.Children) > 0 && child.Children[0].Obj != nil &&
			(child.Children[0].Obj.ContainsFont("Italic") || child.Children[0].Obj.ContainsFont("Oblique")):
			host = m.end
		default:
			host = m.findAncestor(isHeadingKind2)
		}
		host.Append(child)
		m.end = findEnd(m.Root)
	}

	if connectIndex < len(children) {
		m.Root.Append(children[connectIndex])
		for _, child := range children[connectIndex+1:] {
			children[connectIndex].Append(child)
		}
	}
	m.end = findEnd(m.Root)
}

func isHeadingKind2(c *docast.Node) bool { return isHeadingKind(c.Kind) }

// normalizeArea walks an area's tree from the leaves up, rebasing list
// nodes' xpos to the first character's own left (undoing any area-relative
// offset they picked up during line assembly) and every other node's xpos
// to be relative to the area's own left edge, then zeroes the area's xpos
// so later comparisons are all area-local.
func normalizeArea(area *docast.Node) {
	var nodes []*docast.Node
	area.PreOrder(func(n *docast.Node) { nodes = append(nodes, n) })
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n == area {
			continue
		}
		if isListKind(n.Kind) && n.Obj != nil {
			n.XPos = n.Obj.BBox().Left - area.XPos
		} else {
			n.XPos -= area.XPos
		}
	}
	area.XPos = 0
}

// findEnd returns the node nearest the end of the document (in reading
// order) that is a heading, list, or note — the kinds that remain open for
// more content to attach into — falling back to the very last node when
// none exists.
func findEnd(root *docast.Node) *docast.Node {
	var all []*docast.Node
	root.PreOrder(func(n *docast.Node) { all = append(all, n) })
	for i := len(all) - 1; i >= 0; i-- {
		n := all[i]
		if isHeadingKind(n.Kind) || isListKind(n.Kind) || n.Kind == docast.KindNote {
			return n
		}
	}
	return all[len(all)-1]
}

// findAncestor walks from the current end up to the root looking for the
// nearest node matching pred, defaulting to the document root.
func (m *Merger) findAncestor(pred func(*docast.Node) bool) *docast.Node {
	for c := m.end; c != nil; c = c.Parent {
		if pred(c) {
			return c
		}
	}
	return m.Root
}

func isHeadingKind(k docast.Kind) bool {
	switch k {
	case docast.KindHead1, docast.KindHead2, docast.KindHead3, docast.KindHead4:
		return true
	default:
		return false
	}
}

func isListKind(k docast.Kind) bool {
	switch k {
	case docast.KindListA, docast.KindListB, docast.KindListN, docast.KindListS:
		return true
	default:
		return false
	}
}
