package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// captionSearchWindow bounds the sibling scan that starts at the caption
// itself, so the 5 siblings after a caption are checked for the
// table/figure it introduces.
const captionSearchWindow = 6

// Captions reparents every standalone caption node onto the table or
// figure it introduces — the next sibling of the matching kind within
// captionSearchWindow positions — copying its number attribute across.
// Captions that find no match are dropped.
func Captions(document *docast.Node) *docast.Node {
	var captions []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindCaption {
			captions = append(captions, n)
		}
	})

	for _, caption := range captions {
		parent := caption.Parent
		if parent == nil {
			continue
		}
		idx := -1
		for i, c := range parent.Children {
			if c == caption {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		wantKind := docast.KindTable
		if caption.AttrString("caption_type") == "figure" {
			wantKind = docast.KindFigure
		}

		end := idx + captionSearchWindow
		if end > len(parent.Children) {
			end = len(parent.Children)
		}
		var target *docast.Node
		for _, sibling := range parent.Children[idx:end] {
			if sibling.Kind == wantKind {
				target = sibling
				break
			}
		}
		if target == nil {
			parent.RemoveChild(caption)
			continue
		}
		parent.RemoveChild(caption)
		target.Append(caption)
		if n := caption.Attr("number"); n != nil {
			target.SetAttr("number", n)
		}
	}
	return document
}
