package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Lines wraps every paragraph's line children in a single "text" node.
// Must run before Paragraphs, which assumes each paragraph holds exactly
// one text child.
func Lines(document *docast.Node) *docast.Node {
	var paras []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindPara {
			paras = append(paras, n)
		}
	})
	for _, para := range paras {
		text := docast.NewNode(docast.KindText)
		lines := para.Children
		para.Children = nil
		for _, line := range lines {
			text.Append(line)
		}
		para.Append(text)
	}
	return document
}
