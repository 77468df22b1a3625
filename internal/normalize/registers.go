package normalize

import (
	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/table"
)

// Registers folds consecutive sibling "bit" nodes (one per described
// register bit/range) into a synthetic two-column table: left cell holds
// the bit descriptor line, right cell its description. A run breaks when
// the source page changes.
func Registers(document *docast.Node) *docast.Node {
	var sections []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindSection {
			sections = append(sections, n)
		}
	})
	sections = append(sections, document)

	var bitsGroups []*docast.Node
	for _, section := range sections {
		newChildren := make([]*docast.Node, 0, len(section.Children))
		var bits *docast.Node
		for _, child := range section.Children {
			if child.Kind == docast.KindBit {
				if bits == nil || bits.Page != child.Page {
					bits = docast.NewNode(docast.KindTable)
					bits.XPos = child.XPos
					bits.SetAttr("table_type", "bits")
					bits.Page = child.Page
					newChildren = append(newChildren, bits)
					bitsGroups = append(bitsGroups, bits)
				}
				bits.Append(child)
			} else {
				bits = nil
				newChildren = append(newChildren, child)
			}
		}
		section.Children = newChildren
		for _, c := range newChildren {
			c.Parent = section
		}
	}

	for _, bits := range bitsGroups {
		buildBitfieldTable(bits)
	}
	return document
}

// buildBitfieldTable turns a "bits" wrapper's bit children into a virtual
// two-column table and detaches the bit children, leaving the wrapper with
// a Table attribute and no tree children of its own.
func buildBitfieldTable(bits *docast.Node) {
	children := append([]*docast.Node(nil), bits.Children...)
	bits.Children = nil

	var cells []*table.Cell
	var bboxes []geom.Rectangle
	for row, bit := range children {
		top, bottom, ok := lineExtent(bit)
		if !ok {
			continue
		}
		left := bit.XPos
		right := left + 1
		midX := left
		if first := firstLine(bit); first != nil {
			bb := first.BBox()
			left, right = bb.Left, bb.Right
			midX = left + (right-left)*0.3
		}
		leftBBox := geom.NewRectangle(left, bottom, midX, top)
		rightBBox := geom.NewRectangle(midX, bottom, right, top)
		bboxes = append(bboxes, leftBBox, rightBBox)
		cells = append(cells,
			&table.Cell{Positions: [][2]int{{row, 0}}, SourceBBoxes: []geom.Rectangle{leftBBox},
				Borders: table.Borders{Left: true, Bottom: true, Right: true, Top: true}, IsSimple: true},
			&table.Cell{Positions: [][2]int{{row, 1}}, SourceBBoxes: []geom.Rectangle{rightBBox},
				Borders: table.Borders{Left: true, Bottom: true, Right: true, Top: true}},
		)
	}
	if len(cells) == 0 {
		return
	}
	bbox := geom.JoinAll(bboxes)
	t := table.NewVirtualTable(bbox, cells, 2, len(children))
	t.Kind = table.KindBitfield
	bits.Table = t
}

// lineExtent returns the top of the highest line and bottom of the lowest
// line under n, used to bound a bit row's vertical extent.
func lineExtent(n *docast.Node) (top, bottom float64, ok bool) {
	var lines []layout.CharLine
	n.PreOrder(func(c *docast.Node) {
		if c.Kind == docast.KindLine && c.Obj != nil {
			lines = append(lines, *c.Obj)
		}
	})
	if len(lines) == 0 {
		return 0, 0, false
	}
	top = lines[0].BBox().Top
	bottom = lines[0].BBox().Bottom
	for _, l := range lines {
		if l.BBox().Top > top {
			top = l.BBox().Top
		}
		if l.BBox().Bottom < bottom {
			bottom = l.BBox().Bottom
		}
	}
	return top, bottom, true
}

// firstLine returns the CharLine of the first "line" descendant under n in
// document order, or nil if n has none.
func firstLine(n *docast.Node) *layout.CharLine {
	var found *layout.CharLine
	n.PreOrder(func(c *docast.Node) {
		if found == nil && c.Kind == docast.KindLine && c.Obj != nil {
			found = c.Obj
		}
	})
	return found
}
