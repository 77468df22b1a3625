// Package htmlout renders a normalized document AST to HTML: headings,
// paragraphs, lists, notes, tables and figures map to their obvious tags,
// while inline character formatting (bold/italic/sub/superscript) is
// recovered from a per-character font/offset scan and spliced into the
// output as nested <b>/<i>/<sup>/<sub> spans.
package htmlout

import (
	"strconv"

	"github.com/mcudoc/refdoc/internal/docast"
)

// fmtNode is the intermediate formatting tree built before splicing markup
// into the output elem tree: a node is either a "chars" run, a "newline",
// or one of the five formatting-state kinds.
type fmtNode struct {
	Kind string // "chars", "newline", "superscript", "subscript", "italic", "bold", "underline"
	Chars string
	Children []*fmtNode
	Parent *fmtNode
}

func newFmtNode(kind string, parent *fmtNode) *fmtNode {
	n := &fmtNode{Kind: kind, Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

type fmtState struct {
	superscript, subscript, italic, bold, underline bool
}

func (s fmtState) get(key string) bool {
	switch key {
	case "superscript":
		return s.superscript
	case "subscript":
		return s.subscript
	case "italic":
		return s.italic
	case "bold":
		return s.bold
	case "underline":
		return s.underline
	}
	return false
}

func (s *fmtState) set(key string, v bool) {
	switch key {
	case "superscript":
		s.superscript = v
	case "subscript":
		s.subscript = v
	case "italic":
		s.italic = v
	case "bold":
		s.bold = v
	case "underline":
		s.underline = v
	}
}

var fmtKeys = []string{"superscript", "subscript", "italic", "bold", "underline"}

// formatChar folds one character's props into the running format tree,
// opening or closing a formatting span when its flags differ from the
// current state.
func formatChar(node *fmtNode, state *fmtState, c charProps, ignore map[string]bool) (consumed bool, next *fmtNode) {
	if c.Char == '\r' {
		return true, node
	}
	propVal := map[string]bool{
		"superscript": c.Superscript, "subscript": c.Subscript,
		"italic": c.Italic, "bold": c.Bold, "underline": c.Underline,
	}
	diffKeys := map[string]bool{}
	for _, key := range fmtKeys {
		if ignore[key] {
			continue
		}
		if state.get(key) != propVal[key] {
			diffKeys[key] = propVal[key]
		}
	}
	if len(diffKeys) == 0 {
		var prevKind string
		if len(node.Children) > 0 {
			prevKind = node.Children[len(node.Children)-1].Kind
		}
		switch {
		case prevKind != "newline" && c.Char == '\n':
			newFmtNode("newline", node)
		case prevKind != "chars":
			n := newFmtNode("chars", node)
			n.Chars = string(c.Char)
		default:
			node.Children[len(node.Children)-1].Chars += string(c.Char)
		}
		return true, node
	}

	for _, key := range fmtKeys {
		if v, ok := diffKeys[key]; ok && !v {
			state.set(key, false)
			return false, node.Parent
		}
	}
	for _, key := range fmtKeys {
		if v, ok := diffKeys[key]; ok && v {
			child := newFmtNode(key, node)
			state.set(key, true)
			return false, child
		}
	}
	return true, node
}

// formatLines flattens a "text" node's line children into a flat character
// stream (skipping CR/LF unless withNewlines, trimming leading/trailing
// space and newlines) and folds it through formatChar into a format tree.
func formatLines(textNode *docast.Node, ignore map[string]bool, withNewlines bool) *fmtNode {
	var chars []charProps
	for _, child := range textNode.Children {
		if child.Kind != docast.KindLine || child.Obj == nil {
			continue
		}
		line := *child.Obj
		for _, c := range line.Chars {
			if !withNewlines && (c.Unicode == 0x0a || c.Unicode == 0x0d) {
				continue
			}
			chars = append(chars, computeCharProps(line, c))
		}
		if withNewlines && len(chars) > 0 && chars[len(chars)-1].Char != '\n' {
			last := line.Chars[len(line.Chars)-1]
			cp := computeCharProps(line, last)
			cp.Char = '\n'
			chars = append(chars, cp)
		}
	}
	chars = trimCharProps(chars)

	root := &fmtNode{Kind: "format"}
	state := &fmtState{}
	node := root
	for len(chars) > 0 {
		consumed, next := formatChar(node, state, chars[0], ignore)
		node = next
		if consumed {
			chars = chars[1:]
		}
	}
	return root
}

func trimCharProps(chars []charProps) []charProps {
	start := 0
	for start < len(chars) && (chars[start].Char == ' ' || chars[start].Char == '\n') {
		start++
	}
	end := len(chars)
	for end > start && (chars[end-1].Char == ' ' || chars[end-1].Char == '\n') {
		end--
	}
	return chars[start:end]
}

var fmtTagFor = map[string]string{
	"superscript": "sup", "subscript": "sub", "italic": "i",
	"bold": "b", "underline": "u", "newline": "br",
}

// formatHTMLFmt splices one format-tree node into the output elem tree,
// returning whether subsequent text attaches as a sibling's tail and which
// elem is now the attachment point.
func formatHTMLFmt(xmlnode *elem, treenode *fmtNode, tail bool) (bool, *elem) {
	if treenode.Kind == "chars" {
		if tail {
			xmlnode.Tail += treenode.Chars
		} else {
			xmlnode.Text += treenode.Chars
		}
		return tail, xmlnode
	}
	if tail {
		xmlnode = xmlnode.Parent
	}
	subnode := xmlnode.SubElement(fmtTagFor[treenode.Kind])
	tail = false
	iternode := subnode
	for _, child := range treenode.Children {
		tail, iternode = formatHTMLFmt(iternode, child, tail)
	}
	return true, subnode
}

// formatHTMLText renders a "text" node's lines as formatted inline content
// under xmlnode.
func formatHTMLText(xmlnode *elem, treenode *docast.Node, ignore map[string]bool, withNewlines bool) {
	fmtTree := formatLines(treenode, ignore, withNewlines)
	tail := false
	fmtElem := xmlnode
	for _, child := range fmtTree.Children {
		tail, fmtElem = formatHTMLFmt(fmtElem, child, tail)
	}
}

var headingTag = map[docast.Kind]string{
	docast.KindHead1: "h1", docast.KindHead2: "h2", docast.KindHead3: "h3", docast.KindHead4: "h4",
}

// FormatHTML walks one AST node into xmlnode's children, dispatching on
// Kind.
func FormatHTML(xmlnode *elem, treenode *docast.Node, ignore map[string]bool, withNewlines bool) {
	if ignore == nil {
		ignore = map[string]bool{}
	}
	current := xmlnode

	switch {
	case treenode.Kind == docast.KindHead1, treenode.Kind == docast.KindHead2,
		treenode.Kind == docast.KindHead3, treenode.Kind == docast.KindHead4:
		current = xmlnode.SubElement(headingTag[treenode.Kind])
		if marker := treenode.AttrString("marker"); marker != "" {
			current.SetAttr("id", "section"+marker)
		}
		ignore = union(ignore, "bold", "italic", "underline")

	case treenode.Kind == docast.KindPara:
		current = xmlnode.SubElement("p")

	case treenode.Kind == docast.KindNote:
		current = xmlnode.SubElement("div")
		current.SetAttr("class", "nt")

	case treenode.Kind == docast.KindText:
		formatHTMLText(xmlnode, treenode, ignore, withNewlines)
		return

	case treenode.Kind == docast.KindPage:
		if _, ok := current.Attr("id"); !ok {
			current.SetAttr("id", "page"+strconv.Itoa(treenode.AttrInt("number")))
		}
		return

	case treenode.Kind == docast.KindTable:
		formatHTMLTable(xmlnode, treenode)
		return

	case treenode.Kind == docast.KindFigure:
		formatHTMLFigure(xmlnode, treenode)
		return

	case isListKindH(treenode.Kind):
		if treenode.Kind == docast.KindListB || treenode.Kind == docast.KindListS {
			current = xmlnode.SubElement("ul")
		} else {
			current = xmlnode.SubElement("ol")
		}

	case treenode.Kind == docast.KindElement:
		current = xmlnode.SubElement("li")
		if xmlnode.Tag == "ol" {
			if v, ok := treenode.Attrs["value"]; ok {
				if n, ok := v.(int); ok {
					current.SetAttr("value", strconv.Itoa(n))
				}
			}
		}
	}

	for _, child := range treenode.Children {
		FormatHTML(current, child, ignore, withNewlines)
	}
}

func isListKindH(k docast.Kind) bool {
	switch k {
	case docast.KindListA, docast.KindListB, docast.KindListN, docast.KindListS:
		return true
	default:
		return false
	}
}

func union(base map[string]bool, keys ...string) map[string]bool {
	out := make(map[string]bool, len(base)+len(keys))
	for k, v := range base {
		out[k] = v
	}
	for _, k := range keys {
		out[k] = true
	}
	return out
}

// FormatDocument builds the complete <html> element for document, linking
// stylesheetHref the way format_document does.
func FormatDocument(document *docast.Node, stylesheetHref string) *elem {
	htmlElem := newElem("html")
	head := htmlElem.SubElement("head")
	link := head.SubElement("link")
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", stylesheetHref)
	body := htmlElem.SubElement("body")
	FormatHTML(body, document, nil, true)
	return htmlElem
}
