package htmlout

import (
	"strconv"

	"github.com/mcudoc/refdoc/internal/docast"
)

// formatHTMLFigure renders a figure as a single-cell table scaled to the
// fraction of the content area its source graphic occupied, captioned if a
// caption was reattached to it. Figure content itself is not extracted (no
// vector-graphics-to-HTML conversion is in scope), so the cell carries a
// placeholder.
func formatHTMLFigure(xmlnode *elem, figureNode *docast.Node) {
	tnode := xmlnode.SubElement("table")
	width := 1.0
	if v, ok := figureNode.Attrs["width"]; ok {
		if f, ok := v.(float64); ok {
			width = f
		}
	}
	tnode.SetAttr("width", strconv.Itoa(int(width*50))+"%")

	var caption *docast.Node
	for _, c := range figureNode.Children {
		if c.Kind == docast.KindCaption {
			caption = c
			break
		}
	}
	if caption != nil {
		tnode.SetAttr("id", "figure"+strconv.Itoa(caption.AttrInt("number")))
		capElem := tnode.SubElement("caption")
		FormatHTML(capElem, caption, nil, true)
	}

	row := tnode.SubElement("tr")
	cell := row.SubElement("td")
	cell.Text = "(omitted)"
}
