package pdfmodel

import (
	"fmt"
	"strings"
)

// Structure wraps one node of the PDF/UA structure tree, exposed to the
// CLI via the --tags verb.
type Structure struct {
	Title string
	ActualText string
	AltText string
	Type string
	ObjType string
	Language string
	ID string
	MarkedIDs []int
	Attributes map[string]string
	children []Structure
}

func newStructure(p StructurePrimitive) Structure {
	s := Structure{
		Title: p.Title,
		ActualText: p.ActualText,
		AltText: p.AltText,
		Type: p.Type,
		ObjType: p.ObjType,
		Language: p.Language,
		ID: p.ID,
		MarkedIDs: p.MarkedIDs,
		Attributes: formatAttributes(p.Attributes),
	}
	for _, c := range p.Children {
		s.children = append(s.children, newStructure(c))
	}
	return s
}

// formatAttributes stringifies a structure-tag attribute map. Arrays are
// unsupported (rendered as "[?]"); bools and numbers are formatted directly.
func formatAttributes(attrs map[string]any) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		switch t := v.(type) {
		case bool:
			out[k] = fmt.Sprintf("%t", t)
		case float64:
			out[k] = fmt.Sprintf("%g", t)
		case int:
			out[k] = fmt.Sprintf("%d", t)
		case string:
			out[k] = t
		case []any:
			out[k] = "[?]"
		default:
			out[k] = fmt.Sprintf("%v", t)
		}
	}
	return out
}

// Child returns the i-th child node.
func (s Structure) Child(i int) Structure { return s.children[i] }

// Children returns all child nodes.
func (s Structure) Children() []Structure { return s.children }

// Describe renders an indented recursive dump of the subtree rooted at s.
func (s Structure) Describe() string {
	var b strings.Builder
	s.describe(&b, 0)
	return b.String()
}

func (s Structure) describe(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(" ", depth))
	fmt.Fprintf(b, "<%s", s.Type)
	if s.Title != "" {
		fmt.Fprintf(b, " title=%q", s.Title)
	}
	if s.ActualText != "" {
		fmt.Fprintf(b, " actualText=%q", s.ActualText)
	}
	b.WriteString(">\n")
	for _, c := range s.children {
		c.describe(b, depth+1)
	}
}
