package htmlout

import (
	"github.com/mcudoc/refdoc/internal/layout"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// charProps is the per-character formatting state used by the line
// flattener.
type charProps struct {
	Superscript bool
	Subscript   bool
	Bold        bool
	Italic      bool
	Underline   bool
	Char        rune
}

// computeCharProps derives one character's formatting flags from its own
// font name and its offset from the containing line's baseline. Underline
// detection is dropped: the source keys it off hyperlink annotations, which
// this module's character model does not carry.
func computeCharProps(line layout.CharLine, c pdfmodel.Character) charProps {
	cp := charProps{
		Bold:   c.IsBold(),
		Italic: c.IsItalic(),
		Char:   c.Unicode,
	}
	if line.Rotation != 0 {
		if c.Origin.X < line.Origin-0.25*line.Height {
			cp.Superscript = true
		} else if c.Origin.X > line.Origin+0.15*line.Height {
			cp.Subscript = true
		}
	} else if c.Origin.Y > line.Origin+0.25*line.Height {
		cp.Superscript = true
	} else if c.Origin.Y < line.Origin-0.15*line.Height {
		cp.Subscript = true
	}
	return cp
}
