package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Tables folds split continuations of the same logical table back together:
// same-numbered content tables stack via AppendBottom, register tables
// accumulate side by side via AppendSide, and bits tables stack via
// AppendBottom without header merging.
func Tables(document *docast.Node) *docast.Node {
	contentTables := map[int][]*docast.Node{}
	var contentOrder []int
	var registerGroups [][]*docast.Node
	var bitsGroups [][]*docast.Node

	var sections []*docast.Node
	document.PreOrder(func(n *docast.Node) {
		if n.Kind == docast.KindSection {
			sections = append(sections, n)
		}
	})
	sections = append(sections, document)

	lastNumber := 0
	for _, section := range sections {
		var currentRegisters []*docast.Node
		var currentBits []*docast.Node
		push := func() {
			if len(currentRegisters) > 0 {
				registerGroups = append(registerGroups, currentRegisters)
				currentRegisters = nil
			}
			if len(currentBits) > 0 {
				bitsGroups = append(bitsGroups, currentBits)
				currentBits = nil
			}
		}
		for _, child := range section.Children {
			if child.Kind != docast.KindTable {
				push()
				lastNumber = 0
				continue
			}
			switch child.AttrString("table_type") {
			case "table":
				number := child.AttrInt("number")
				if number > 0 {
					if _, ok := contentTables[number]; !ok {
						contentOrder = append(contentOrder, number)
					}
					contentTables[number] = append(contentTables[number], child)
					lastNumber = number
				} else if lastNumber > 0 {
					contentTables[lastNumber] = append(contentTables[lastNumber], child)
				}
				push()
			case "register":
				currentRegisters = append(currentRegisters, child)
			case "bits":
				currentBits = append(currentBits, child)
			default:
				lastNumber = 0
			}
		}
		push()
		lastNumber = 0
	}

	for _, number := range contentOrder {
		mergeRun(contentTables[number], true)
	}
	for _, run := range registerGroups {
		mergeSideRun(run)
	}
	for _, run := range bitsGroups {
		mergeRun(run, false)
	}
	return document
}

// mergeRun absorbs each successor node's table into the first node's table
// via AppendBottom, detaching successors whose merge succeeds.
func mergeRun(nodes []*docast.Node, mergeHeaders bool) {
	if len(nodes) < 2 || nodes[0].Table == nil {
		return
	}
	head := nodes[0]
	for _, next := range nodes[1:] {
		if next.Table == nil {
			continue
		}
		merged, err := head.Table.AppendBottom(next.Table, mergeHeaders)
		if err != nil {
			continue
		}
		head.Table = merged
		if next.Parent != nil {
			next.Parent.RemoveChild(next)
		}
	}
}

// mergeSideRun absorbs each successor node's table into the first node's
// table via AppendSide, expanding the shorter table to match row counts.
func mergeSideRun(nodes []*docast.Node) {
	if len(nodes) < 2 || nodes[0].Table == nil {
		return
	}
	head := nodes[0]
	for _, next := range nodes[1:] {
		if next.Table == nil {
			continue
		}
		merged, err := head.Table.AppendSide(next.Table, true)
		if err != nil {
			continue
		}
		head.Table = merged
		if next.Parent != nil {
			next.Parent.RemoveChild(next)
		}
	}
}
