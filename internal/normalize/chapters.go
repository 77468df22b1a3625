package normalize

import (
	"strings"

	"github.com/mcudoc/refdoc/internal/docast"
)

// chapterSlugReplacer turns a chapter title into a filesystem-safe filename
// by replacing spaces and punctuation with underscores.
var chapterSlugReplacer = strings.NewReplacer(
	" ", "_", "/", "_", "(", "_", ")", "_", "-", "_", ",", "_", ":", "_",
)

// Chapters splits the document's top-level children into chapter nodes at
// every head1/head2 boundary, deriving each chapter's filename from its
// heading title. Not part of the default normalization pipeline — run only
// when chapter-per-file HTML output is requested.
func Chapters(document *docast.Node) *docast.Node {
	var headingIdx []int
	for i, child := range document.Children {
		if len(child.Children) == 0 {
			continue
		}
		heading := child.Children[0]
		if heading.Kind == docast.KindHead1 || heading.Kind == docast.KindHead2 {
			headingIdx = append(headingIdx, i)
		}
	}
	if len(headingIdx) == 0 {
		return document
	}
	bounds := append([]int{}, headingIdx...)
	if bounds[0] != 0 {
		bounds = append([]int{0}, bounds...)
	}
	bounds = append(bounds, len(document.Children))

	type chapter struct {
		title, filename string
		nodes           []*docast.Node
	}
	var chapters []chapter
	for i := 0; i < len(bounds)-1; i++ {
		idx0, idx1 := bounds[i], bounds[i+1]
		if idx0 >= len(document.Children) {
			continue
		}
		heading := document.Children[idx0].Children[0]
		title := chapterTitle(heading)
		if heading.Kind == docast.KindHead1 {
			title = "0 " + title
		}
		filename := strings.ToLower(chapterSlugReplacer.Replace(title))
		end := idx1
		if end > len(document.Children) {
			end = len(document.Children)
		}
		nodes := append([]*docast.Node{}, document.Children[idx0:end]...)
		chapters = append(chapters, chapter{title: title, filename: filename, nodes: nodes})
	}

	document.Children = nil
	for _, ch := range chapters {
		node := docast.NewNode(docast.KindChapter)
		node.SetAttr("title", ch.title)
		node.SetAttr("filename", ch.filename)
		document.Append(node)
		for _, n := range ch.nodes {
			node.Append(n)
		}
	}
	return document
}

// chapterTitle concatenates the text of every line under a heading node.
func chapterTitle(heading *docast.Node) string {
	var parts []string
	heading.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindLine && n.Obj != nil {
			if s := strings.TrimSpace(n.Obj.Content()); s != "" {
				parts = append(parts, s)
			}
		}
	})
	return strings.Join(parts, " ")
}
