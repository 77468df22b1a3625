package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Paragraphs unwraps paragraphs that are the sole paragraph child of a
// list-element/caption/document/cell node (or any paragraph under a
// caption), replacing the paragraph with its text child directly and
// merging any resulting sibling text nodes into the first.
func Paragraphs(document *docast.Node) *docast.Node {
	var paras []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindPara {
			paras = append(paras, n)
		}
	})

	seen := map[*docast.Node]bool{}
	var parents []*docast.Node
	for _, p := range paras {
		if p.Parent == nil || seen[p.Parent] {
			continue
		}
		switch p.Parent.Kind {
		case docast.KindElement, docast.KindCaption, docast.KindDocument, docast.KindCell:
			seen[p.Parent] = true
			parents = append(parents, p.Parent)
		}
	}

	for _, parent := range parents {
		paraCount := 0
		for _, c := range parent.Children {
			if c.Kind == docast.KindPara {
				paraCount++
			}
		}
		if parent.Kind != docast.KindCaption && paraCount != 1 {
			continue
		}

		newChildren := make([]*docast.Node, 0, len(parent.Children))
		for _, c := range parent.Children {
			if c.Kind == docast.KindPara && len(c.Children) > 0 {
				inner := c.Children[0]
				inner.Parent = parent
				newChildren = append(newChildren, inner)
			} else {
				newChildren = append(newChildren, c)
			}
		}
		parent.Children = newChildren

		var texts []*docast.Node
		for _, c := range newChildren {
			if c.Kind == docast.KindText {
				texts = append(texts, c)
			}
		}
		if len(texts) > 1 {
			first := texts[0]
			for _, text := range texts[1:] {
				for _, line := range append([]*docast.Node(nil), text.Children...) {
					first.Append(line)
				}
				parent.RemoveChild(text)
			}
		}
	}
	return document
}
