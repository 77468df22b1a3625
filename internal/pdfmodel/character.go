package pdfmodel

import (
	"fmt"

	"github.com/mcudoc/refdoc/internal/geom"
)

// Character wraps a GlyphPrimitive with the derived bbox/rotation/render
// state the rest of the pipeline consumes.
type Character struct {
	Unicode rune
	Origin geom.Point
	Rotation int // composed page+char rotation, normalized to 0/90/180/270
	Render RenderMode
	Font string
	Flags int
	Size float64
	Weight int
	Fill uint32
	Stroke uint32

	looseBBox geom.Rectangle
	hasLoose bool
	tightBBox geom.Rectangle
}

// BBox returns the loose bbox if present, else falls back to the tight one.
func (c Character) BBox() geom.Rectangle {
	if c.hasLoose && !c.looseBBox.Empty() {
		return c.looseBBox
	}
	return c.tightBBox
}

// TightBBox returns the always-present tight bbox.
func (c Character) TightBBox() geom.Rectangle { return c.tightBBox }

// HasLooseBBox reports whether the provider supplied a non-empty loose bbox.
func (c Character) HasLooseBBox() bool { return c.hasLoose && !c.looseBBox.Empty() }

// Width returns the loose bbox width.
func (c Character) Width() float64 { return c.BBox().Width() }

// Height returns the loose bbox height.
func (c Character) Height() float64 { return c.BBox().Height() }

// TWidth returns the tight bbox width.
func (c Character) TWidth() float64 { return c.tightBBox.Width() }

// THeight returns the tight bbox height.
func (c Character) THeight() float64 { return c.tightBBox.Height() }

// Renderable reports whether this character paints anything visible.
func (c Character) Renderable() bool {
	return c.Render != RenderInvisible && c.Render != RenderClip
}

// IsBold reports whether the font flags mark this a bold glyph. Flag bit 18
// (0x40000 in PDF font descriptor /Flags) is ForceBold; many producers
// instead encode weight directly.
func (c Character) IsBold() bool {
	return c.Weight >= 600 || c.Flags&0x40000 != 0
}

// IsItalic reports whether the font flags mark this an italic glyph (bit 7,
// 0x40, Italic).
func (c Character) IsItalic() bool {
	return c.Flags&0x40 != 0
}

// bboxCacheKey is the (font, unicode, tight-width, tight-height) tuple used
// as the document-wide bbox cache's key. Hashed with blake2b in
// bboxcache.go so the cache map stays a fixed-size comparable key rather
// than a formatted string per lookup.
type bboxCacheKey struct {
	font string
	unicode rune
	tightW float64
	tightH float64
}

func newCharacter(g GlyphPrimitive, pageRotation int, pageW, pageH float64) Character {
	c := Character{
		Unicode: filterUnicode(g.Unicode),
		Origin: geom.Point{X: g.OriginX, Y: g.OriginY},
		Render: g.Render,
		Font: g.FontName,
		Flags: g.FontFlags,
		Size: g.Size,
		Weight: g.Weight,
		Fill: g.FillRGBA,
		Stroke: g.StrokeRGBA,
	}
	c.tightBBox = geom.NewRectangle(g.TightBBox[0], g.TightBBox[1], g.TightBBox[2], g.TightBBox[3])
	c.hasLoose = g.HasLoose
	if g.HasLoose {
		c.looseBBox = geom.NewRectangle(g.LooseBBox[0], g.LooseBBox[1], g.LooseBBox[2], g.LooseBBox[3])
	}

	// Compose the page and glyph rotation. A 90-degree rotated page with an
	// unrotated (upright) glyph still reads top-to-bottom in page space, so
	// the special case below keeps such glyphs' composed rotation at the
	// glyph's own value rather than blindly adding the page rotation.
	composed := g.Rotation
	if pageRotation != 0 && !(pageRotation == 90 && g.Rotation == 0) {
		composed = ((g.Rotation + pageRotation) % 360 + 360) % 360
	}
	c.Rotation = composed
	return c
}

// cacheKey returns the bbox cache key for this character, valid regardless
// of whether it currently has a loose bbox.
func (c Character) cacheKey() bboxCacheKey {
	return bboxCacheKey{font: c.Font, unicode: c.Unicode, tightW: roundHundredths(c.tightBBox.Width()), tightH: roundHundredths(c.tightBBox.Height())}
}

func roundHundredths(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// Descr renders a short debug description for logging.
func (c Character) Descr() string {
	return fmt.Sprintf("%q font=%s size=%.1f rot=%d", c.Unicode, c.Font, c.Size, c.Rotation)
}

// filterUnicode applies the per-glyph unicode filter names: drop
// CR and the registered-trademark sign, remap NUL-adjacent codepoint 2 to a
// hyphen, remap the common PUA bullet codepoints to a bullet, and drop
// control characters below 0x20 other than LF.
func filterUnicode(r rune) rune {
	switch {
	case r == '\r' || r == '®':
		return 0
	case r == 2:
		return '-'
	case r >= 0xF020 && r <= 0xF0FF: // PUA range vendors commonly use for bullets
		return '•'
	case r < 0x20 && r != '\n':
		return 0
	default:
		return r
	}
}
