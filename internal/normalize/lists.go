package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Lists groups consecutive sibling list-item nodes of the same kind into a
// single wrapper list node holding "element" children, recursing leaves-up
// first.
func Lists(node *docast.Node) *docast.Node {
	var groups [][]*docast.Node
	var current []*docast.Node
	first := true
	var currentKind docast.Kind

	for _, child := range node.Children {
		Lists(child)
		if first || child.Kind == currentKind {
			current = append(current, child)
		} else {
			groups = append(groups, current)
			current = []*docast.Node{child}
		}
		currentKind = child.Kind
		first = false
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	newChildren := make([]*docast.Node, 0, len(node.Children))
	for _, group := range groups {
		if !isListKind(group[0].Kind) {
			newChildren = append(newChildren, group...)
			continue
		}
		wrapperKind := group[0].Kind
		wrapper := docast.NewNode(wrapperKind)
		wrapper.XPos = group[0].XPos
		if v, ok := group[0].Attrs["value"]; ok {
			wrapper.SetAttr("start", v)
		}
		for _, item := range group {
			item.Kind = docast.KindElement
			wrapper.Append(item)
		}
		newChildren = append(newChildren, wrapper)
	}
	node.Children = newChildren
	for _, c := range newChildren {
		c.Parent = node
	}
	return node
}
