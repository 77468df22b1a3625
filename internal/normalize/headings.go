package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Headings promotes each heading's title paragraph into the heading's own
// slot (carrying its marker along) and renames the heading itself to
// "section", so the final tree reads as section{head1{...}, ...body}.
// Empty titles drop their paragraph instead.
func Headings(document *docast.Node) *docast.Node {
	var headings []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if isHeadingKind(n.Kind) {
			headings = append(headings, n)
		}
	})
	for _, heading := range headings {
		if len(heading.Children) == 0 {
			heading.Kind = docast.KindSection
			continue
		}
		para := heading.Children[0]
		if len(para.Children) == 0 || len(para.Children[0].Children) == 0 {
			heading.RemoveChild(para)
		} else {
			para.SetAttr("marker", heading.Attr("marker"))
			para.Kind = heading.Kind
		}
		heading.Kind = docast.KindSection
	}
	return document
}
