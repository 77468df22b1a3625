package pdfmodel

import "github.com/mcudoc/refdoc/internal/geom"

// NewTestCharacter builds a Character directly from its visible fields, for
// use by other packages' tests that need to construct fixture characters
// without going through a PageProvider. Production code never calls this.
func NewTestCharacter(r rune, x, y float64, rotation int) Character {
	w, h := 6.0, 10.0
	return Character{
		Unicode:  r,
		Origin:   geom.Point{X: x, Y: y},
		Rotation: rotation,
		Render:   RenderFill,
		Size:     10,

		looseBBox: geom.NewRectangle(x, y, x+w, y+h),
		hasLoose:  true,
		tightBBox: geom.NewRectangle(x, y, x+w, y+h),
	}
}

// NewTestCharacterWithFont extends NewTestCharacter with font/weight/flags,
// used by classify and docast tests that need to exercise bold/italic
// detection or font-name matching.
func NewTestCharacterWithFont(r rune, x, y float64, font string, size float64, weight, flags int) Character {
	c := NewTestCharacter(r, x, y, 0)
	c.Font = font
	c.Size = size
	c.Weight = weight
	c.Flags = flags
	w := size * 0.6
	h := size
	c.looseBBox = geom.NewRectangle(x, y, x+w, y+h)
	c.tightBBox = c.looseBBox
	return c
}
