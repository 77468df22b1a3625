package docast

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcudoc/refdoc/internal/classify"
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
	"github.com/mcudoc/refdoc/internal/table"
)

// Precompiled classification patterns: all regexes used during streaming
// assembly are compiled once at package init rather than per call.
var (
	headingNumberRe = regexp.MustCompile(`^(\d+)(\.\d+){0,2}\b`)
	noteRe = regexp.MustCompile(`^ *(Note|Caution|Warning):?`)
	listBulletRe = regexp.MustCompile(`^ *([•–])`)
	listNumberRe = regexp.MustCompile(`^ *(\d+)\.`)
	listAlphaRe = regexp.MustCompile(`^ *([a-z])\)`)
	bitHeaderRe = regexp.MustCompile(`^ *(Bytes? \d+(-\d+)?[,:]? )?B[uio]ts? (\d+)(:(\d+))?`)
	captionHeadRe = regexp.MustCompile(`^(Figure|Table)\s+(\d+)\.`)
)

// builderState is the per-area streaming state threaded through the object
// stream: the current insertion node, the last line's origin, and
// open-note/open-list bookkeeping.
type builderState struct {
	area *Node
	current *Node
	ypos float64
	haveYPos bool
	tmpl classify.Template
	pageNumber int
	areaWidth float64
}

// objStreamItem is one element of the page's ordered object stream: either
// a classified graphic (table/figure) or a character line.
type objStreamItem struct {
	graphic *classify.ClassifiedGraphic
	line *layout.CharLine
}

// Assemble concatenates every page's area roots into one document node in
// page order, discarding the area wrapper (a builder-only anchor with no
// counterpart in the normalized tree).
func Assemble(pagesRoots [][]*Node) *Node {
	document := NewNode(KindDocument)
	for _, roots := range pagesRoots {
		for _, root := range roots {
			for _, child := range root.Children {
				child.Parent = document
				document.Children = append(document.Children, child)
			}
		}
	}
	return document
}

// BuildPage assembles one page's content area(s) into AST trees: one AST
// per content sub-area, with the first leaf of the first sub-area carrying
// a synthetic page{number} node.
func BuildPage(page *pdfmodel.Page, tmpl classify.Template, pageNumber int, cp table.CharProvider) []*Node {
	areas := tmpl.Areas(page.Width(), page.Height(), page.Rotation())
	sp := tmpl.Spacing(page.Rotation())

	var roots []*Node
	firstLeafSet := false
	for _, area := range areas {
		if area.ID != "content" {
			continue
		}
		for _, rect := range area.Content {
			root := buildArea(page, rect, tmpl, sp, cp, pageNumber)
			if !firstLeafSet {
				markFirstLeafWithPage(root, pageNumber)
				firstLeafSet = true
			}
			roots = append(roots, root)
		}
	}
	return roots
}

func markFirstLeafWithPage(root *Node, pageNumber int) {
	var found bool
	root.PreOrder(func(n *Node) {
		if found || len(n.Children) > 0 {
			return
		}
		pageNode := NewNode(KindPage)
		pageNode.SetAttr("number", pageNumber)
		if n.Parent == nil {
			n.Append(pageNode)
			found = true
			return
		}
		parent := n.Parent
		for i, c := range parent.Children {
			if c == n {
				parent.Children = append(parent.Children[:i:i], append([]*Node{pageNode}, parent.Children[i:]...)...)
				pageNode.Parent = parent
				break
			}
		}
		found = true
	})
}

func buildArea(page *pdfmodel.Page, rect geom.Rectangle, tmpl classify.Template, sp classify.Spacing, cp table.CharProvider, pageNumber int) *Node {
	area := NewNode(KindArea)
	area.Page = pageNumber
	st := &builderState{area: area, current: area, tmpl: tmpl, pageNumber: pageNumber, areaWidth: rect.Width()}

	graphics := classify.GraphicsInArea(page, rect, tmpl)
	claimed := make([]geom.Rectangle, len(graphics))
	for i, g := range graphics {
		claimed[i] = g.BBox
	}

	chars := page.CharsInArea(rect)
	var remaining []pdfmodel.Character
	for _, c := range chars {
		inGraphic := false
		for _, bb := range claimed {
			if bb.ContainsPoint(c.Origin) {
				inGraphic = true
				break
			}
		}
		if !inGraphic {
			remaining = append(remaining, c)
		}
	}
	lines := layout.CharLinesInArea(remaining, page.Height(), layout.Spacing{SC: sp.SC})

	stream := mergeStream(graphics, lines)
	for _, item := range stream {
		if item.graphic != nil {
			appendGraphic(st, item.graphic, cp)
			continue
		}
		appendLine(st, *item.line, sp)
	}
	return area
}

// mergeStream interleaves classified graphics and character lines by
// descending top-y, matching reading order.
func mergeStream(graphics []classify.ClassifiedGraphic, lines []layout.CharLine) []objStreamItem {
	var out []objStreamItem
	gi, li := 0, 0
	for gi < len(graphics) || li < len(lines) {
		switch {
		case gi >= len(graphics):
			out = append(out, objStreamItem{line: &lines[li]})
			li++
		case li >= len(lines):
			out = append(out, objStreamItem{graphic: &graphics[gi]})
			gi++
		case graphics[gi].BBox.Top >= lines[li].Top:
			out = append(out, objStreamItem{graphic: &graphics[gi]})
			gi++
		default:
			out = append(out, objStreamItem{line: &lines[li]})
			li++
		}
	}
	return out
}

func appendGraphic(st *builderState, g *classify.ClassifiedGraphic, cp table.CharProvider) {
	rewindToHeadingOrRoot(st)
	var node *Node
	switch g.Kind {
	case classify.KindFigure:
		node = NewNode(KindFigure)
		if st.areaWidth > 0 {
			node.SetAttr("width", g.BBox.Width()/st.areaWidth)
		}
	default:
		node = NewNode(KindTable)
		opts := table.BuildOptions{
			VLines: g.VLines, HLines: g.HLines,
			IsRegister: g.Kind == classify.KindRegisterTable,
			XEm: 4, YEm: 4, BoldFrac: 0.33,
			IsBold: func(bb geom.Rectangle) bool { return false },
		}
		if g.Caption != nil {
			capBBox := g.Caption.BBox
			opts.Caption = &capBBox
		}
		tbl, err := table.NewTable(g.BBox, opts, cp)
		if err == nil {
			node.Table = tbl
		}
		if g.Kind == classify.KindRegisterTable {
			node.SetAttr("table_type", "register")
		} else {
			node.SetAttr("table_type", "table")
		}
	}
	node.Page = st.pageNumber
	node.BBox = g.BBox
	if g.Caption != nil {
		node.SetAttr("caption_type", strings.ToLower(g.Caption.Kind))
		node.SetAttr("number", g.Caption.Number)
	}
	st.current.Append(node)
	st.current = st.area
	st.haveYPos = false
}

func rewindToHeadingOrRoot(st *builderState) {
	n := st.current.FindAncestor(func(n *Node) bool { return isHeading(n.Kind) || n.Kind == KindArea })
	if n != nil {
		st.current = n
	}
}

// appendLine applies the per-CharLine classification cascade: note close,
// list escape, heading, note, caption, list item, register bit header, and
// plain paragraph text, in that priority order.
func appendLine(st *builderState, l layout.CharLine, sp classify.Spacing) {
	content := strings.TrimSpace(l.Content())
	newlines := 0
	if st.haveYPos {
		newlines = int((st.ypos - l.Origin) / (sp.LH * l.Height))
	}
	st.ypos = l.Origin
	st.haveYPos = true

	left := l.BBox().Left
	unindentTo(st, left, newlines, sp.XEm)
	escapeList(st, left, sp.XEm)
	// A line following a heading's own title line is body content, not more
	// of the title: leave the title paragraph so it attaches to the heading.
	if st.current.Kind == KindPara && st.current.Parent != nil && isHeading(st.current.Parent.Kind) {
		st.current = st.current.Parent
	}

	if isEndOfOpenNote(st, l) {
		closeOpenNote(st)
	}
	switch {
	case matchHeading(st, l, content, sp):
		// handled inside matchHeading
	case noteRe.MatchString(content):
		closeOpenNote(st)
		note := NewNode(KindNote)
		note.XPos = left
		m := noteRe.FindStringSubmatch(content)
		note.SetAttr("type", strings.ToLower(m[1]))
		st.current.Append(note)
		para := NewNode(KindPara)
		para.XPos = left
		note.Append(para)
		st.current = para
	case len(l.Chars) > 0 && l.Chars[0].IsBold() && captionHeadRe.MatchString(content):
		rewindToHeadingOrRoot(st)
		cap := NewNode(KindCaption)
		cap.XPos = left
		m := captionHeadRe.FindStringSubmatch(content)
		cap.SetAttr("caption_type", strings.ToLower(m[1]))
		if n, err := strconv.Atoi(m[2]); err == nil {
			cap.SetAttr("number", n)
		}
		st.current.Append(cap)
		para := NewNode(KindPara)
		para.XPos = left
		cap.Append(para)
		st.current = para
	case matchListItem(st, content, left, sp.XEm):
		st.current.XPos = left
	case bitHeaderRe.MatchString(content):
		rewindToHeadingOrRoot(st)
		bit := NewNode(KindBit)
		bit.XPos = left
		bit.Page = st.pageNumber
		st.current.Append(bit)
		para := NewNode(KindPara)
		para.XPos = left
		bit.Append(para)
		st.current = para
	case newlines >= 2 || st.current.Kind != KindPara:
		para := NewNode(KindPara)
		para.XPos = left
		st.current.Append(para)
		st.current = para
	}

	lineNode := NewNode(KindLine)
	lineNode.Obj = &l
	lineNode.XPos = left
	st.current.Append(lineNode)
}

func isEndOfOpenNote(st *builderState, l layout.CharLine) bool {
	note := st.current.FindAncestor(func(n *Node) bool { return n.Kind == KindNote })
	if note == nil {
		return false
	}
	if note.AttrString("type") == "note" {
		return len(l.Chars) == 0 || !l.Chars[0].IsItalic()
	}
	return false
}

func closeOpenNote(st *builderState) {
	if note := st.current.FindAncestor(func(n *Node) bool { return n.Kind == KindNote }); note != nil {
		st.current = note.Parent
	}
}

func matchHeading(st *builderState, l layout.CharLine, content string, sp classify.Spacing) bool {
	bucket := st.tmpl.LineSize(l.Height)
	isLarge := bucket == classify.SizeH1
	isBoldNearLeft := bucket != classify.SizeN && len(l.Chars) > 0 && l.Chars[0].IsBold() && l.BBox().Left < sp.XContent+2*sp.XEm
	if !isLarge && !isBoldNearLeft {
		return false
	}
	level := 2
	marker := ""
	if m := headingNumberRe.FindString(content); m != "" {
		marker = m
		level = 1 + strings.Count(m, ".")
	}
	if level > 4 {
		level = 4
	}
	kind := headingKind(level)
	heading := NewNode(kind)
	heading.SetAttr("marker", marker)
	heading.XPos = l.BBox().Left
	rewindToHeadingOrRoot(st)
	st.current.Append(heading)
	para := NewNode(KindPara)
	para.XPos = heading.XPos
	heading.Append(para)
	st.current = para
	return true
}

func matchListItem(st *builderState, content string, left, em float64) bool {
	var kind Kind
	var value *int
	switch {
	case listBulletRe.MatchString(content):
		m := listBulletRe.FindStringSubmatch(content)
		if m[1] == "•" {
			kind = KindListB
		} else {
			kind = KindListS
		}
	case listNumberRe.MatchString(content):
		kind = KindListN
		m := listNumberRe.FindStringSubmatch(content)
		n, _ := strconv.Atoi(m[1])
		value = &n
	case listAlphaRe.MatchString(content):
		kind = KindListA
	default:
		return false
	}
	if isList(st.current.Kind) && left-st.current.XPos < em {
		// A new bullet/number at the same level closes the previous item
		// rather than nesting inside it; a marker indented at least one em
		// deeper than the open item stays nested inside it.
		st.current = st.current.Parent
	}
	item := NewNode(kind)
	if value != nil {
		item.SetAttr("value", *value)
	}
	st.current.Append(item)
	st.current = item
	return true
}

// unindentTo walks up from the current node while its xpos is more than one
// em to the right of target, additionally popping a para when newlines>=2.
func unindentTo(st *builderState, target float64, newlines int, em float64) {
	for st.current.Parent != nil && (target-st.current.XPos) < -em {
		st.current = st.current.Parent
	}
	if newlines >= 2 && st.current.Kind == KindPara && st.current.Parent != nil {
		st.current = st.current.Parent
	}
}

// escapeList pops out of an open list item when a line indents at least two
// ems to the right of the item's own xpos, a wider threshold than
// unindentTo's generic one-em walk since list items routinely carry deeper
// interior indents (wrapped continuation text, nested sub-markers) that
// aren't themselves an escape from the list.
func escapeList(st *builderState, left, em float64) {
	item := st.current.FindAncestor(func(n *Node) bool { return isList(n.Kind) })
	if item == nil || item.Parent == nil {
		return
	}
	if left-item.XPos >= 2*em {
		st.current = item.Parent
	}
}
