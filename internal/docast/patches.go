package docast

// PatchRule is one TOML-configured correction applied to the assembled tree
// before normalization: a caption number whose table is known to be
// misclassified, or whose figure is known to be a scan artifact that should
// be dropped. Some vendor datasheets need a few hand-maintained overrides of
// exactly this shape that no amount of heuristic tuning will reliably catch.
type PatchRule struct {
	Number     int    `toml:"number"`
	SetKind    string `toml:"set_kind"`    // "table", "register", "bits" — overrides table_type
	DropFigure bool   `toml:"drop_figure"` // remove the figure node entirely
}

// ApplyPatches walks document for table/figure nodes whose caption number
// matches a rule and applies it in place. Rules that match nothing are
// silently inert: a patch list is meant to be reused across document
// revisions where a few captions shift or disappear.
func ApplyPatches(document *Node, rules []PatchRule) *Node {
	if len(rules) == 0 {
		return document
	}
	byNumber := map[int]PatchRule{}
	for _, r := range rules {
		byNumber[r.Number] = r
	}

	var toDrop []*Node
	document.PreOrder(func(n *Node) {
		if n.Kind != KindTable && n.Kind != KindFigure {
			return
		}
		var caption *Node
		for _, c := range n.Children {
			if c.Kind == KindCaption {
				caption = c
				break
			}
		}
		number := n.AttrInt("number")
		if caption != nil {
			number = caption.AttrInt("number")
		} else if n.Attr("number") == nil {
			return
		}
		rule, ok := byNumber[number]
		if !ok {
			return
		}
		if rule.SetKind != "" && n.Kind == KindTable {
			n.SetAttr("table_type", rule.SetKind)
		}
		if rule.DropFigure && n.Kind == KindFigure {
			toDrop = append(toDrop, n)
		}
	})
	for _, n := range toDrop {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return document
}
