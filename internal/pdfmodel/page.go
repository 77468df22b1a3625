package pdfmodel

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"

	"github.com/mcudoc/refdoc/internal/geom"
)

// Page wraps a PageProvider with the derived character/path/image/link
// model and a y-bucketed index for fast chars-in-area lookups.
type Page struct {
	index int
	width float64
	height float64
	rotation int
	label string

	chars []Character
	paths []Path
	images []Image
	objLinks []ObjLink
	webLinks []WebLink
	structures []Structure

	yIndex []yBucket // sorted ascending by roundedY, each bucket's chars sorted by x
}

type yBucket struct {
	roundedY float64
	idx []int // indices into chars, sorted by Origin.X
}

// NewPage builds a Page from a provider, normalizing rotation and applying
// the document-wide bbox cache for glyphs missing a loose bbox.
func NewPage(index int, pp PageProvider, cache *BBoxCache) *Page {
	p := &Page{
		index: index,
		width: pp.Width(),
		height: pp.Height(),
		rotation: pp.Rotation(),
		label: pp.Label(),
	}

	n := pp.GlyphCount()
	p.chars = make([]Character, 0, n)
	for i := 0; i < n; i++ {
		g := pp.Glyph(i)
		c := newCharacter(g, p.rotation, p.width, p.height)
		if c.Unicode == 0 {
			continue // filtered out entirely (CR, controls, registered sign)
		}
		p.fixBBox(&c, cache)
		p.chars = append(p.chars, c)
	}

	for _, pp := range pp.Paths() {
		pth := newPath(pp)
		pth.bbox = pth.bbox.Rotated(p.rotation, p.width, p.height)
		p.paths = append(p.paths, pth)
	}
	for _, ip := range pp.Images() {
		im := newImage(ip)
		im.bbox = im.bbox.Rotated(p.rotation, p.width, p.height)
		p.images = append(p.images, im)
	}
	for _, lp := range pp.Links() {
		p.objLinks = append(p.objLinks, ObjLink{
			BBox: geom.NewRectangle(lp.BBox[0], lp.BBox[1], lp.BBox[2], lp.BBox[3]).Rotated(p.rotation, p.width, p.height),
			DestPageIdx: lp.DestPageIdx,
		})
	}
	for _, wp := range pp.WebLinks() {
		wl := WebLink{CharStart: wp.CharStart, CharCount: wp.CharCount, URL: wp.URL}
		for _, b := range wp.BBoxes {
			wl.BBoxes = append(wl.BBoxes, geom.NewRectangle(b[0], b[1], b[2], b[3]).Rotated(p.rotation, p.width, p.height))
		}
		p.webLinks = append(p.webLinks, wl)
	}
	for _, sp := range pp.Structures() {
		p.structures = append(p.structures, newStructure(sp))
	}

	p.linkCharacters()
	p.buildYIndex()
	return p
}

// fixBBox maintains the document-wide bbox cache: an unrotated, renderable
// character with a loose bbox donates it to the cache keyed on
// (font, unicode, tight-width, tight-height); a character missing a loose
// bbox but carrying rotation consults the cache and rotates/translates the
// cached bbox into place.
func (p *Page) fixBBox(c *Character, cache *BBoxCache) {
	if cache == nil {
		return
	}
	key := c.cacheKey()
	if c.Rotation == 0 && c.Renderable() && c.HasLooseBBox() {
		cache.Store(key, c.looseBBox)
		return
	}
	if !c.HasLooseBBox() && c.Rotation != 0 {
		if cached, ok := cache.Load(key); ok {
			c.looseBBox = rotateBBoxToOrigin(cached, c.Origin, c.Rotation)
			c.hasLoose = true
		}
	}
}

func rotateBBoxToOrigin(cached geom.Rectangle, origin geom.Point, rotation int) geom.Rectangle {
	w, h := cached.Width(), cached.Height()
	switch rotation {
	case 90:
		return geom.NewRectangle(origin.X, origin.Y, origin.X+h, origin.Y+w)
	case 180:
		return geom.NewRectangle(origin.X-w, origin.Y, origin.X, origin.Y+h)
	case 270:
		return geom.NewRectangle(origin.X-h, origin.Y-w, origin.X, origin.Y)
	default:
		return geom.NewRectangle(origin.X, origin.Y, origin.X+w, origin.Y+h)
	}
}

func (p *Page) buildYIndex() {
	byY := make(map[float64][]int)
	for i, c := range p.chars {
		ry := roundHundredths(c.Origin.Y)
		byY[ry] = append(byY[ry], i)
	}
	p.yIndex = make([]yBucket, 0, len(byY))
	for y, idx := range byY {
		sort.Slice(idx, func(a, b int) bool { return p.chars[idx[a]].Origin.X < p.chars[idx[b]].Origin.X })
		p.yIndex = append(p.yIndex, yBucket{roundedY: y, idx: idx})
	}
	sort.Slice(p.yIndex, func(a, b int) bool { return p.yIndex[a].roundedY < p.yIndex[b].roundedY })
}

func (p *Page) linkCharacters() {
	for li := range p.objLinks {
		l := &p.objLinks[li]
		for ci := range p.chars {
			if l.BBox.ContainsPoint(p.chars[ci].Origin) {
				l.chars = append(l.chars, &p.chars[ci])
			}
		}
	}
}

// Width, Height, Rotation, Label expose the page-level geometry.
func (p *Page) Width() float64 { return p.width }
func (p *Page) Height() float64 { return p.height }
func (p *Page) Rotation() int { return p.rotation }
func (p *Page) Label() string { return p.label }
func (p *Page) Index() int { return p.index }

// BBox returns the page's full-extent rectangle.
func (p *Page) BBox() geom.Rectangle { return geom.NewRectangle(0, 0, p.width, p.height) }

// CharCount returns the number of characters on the page.
func (p *Page) CharCount() int { return len(p.chars) }

// Char returns the i-th character.
func (p *Page) Char(i int) Character { return p.chars[i] }

// Chars returns all characters, in provider order.
func (p *Page) Chars() []Character { return p.chars }

// Paths, Images, ObjLinks, WebLinks, Structures expose the remaining
// primitive collections, already rotation-normalized.
func (p *Page) Paths() []Path { return p.paths }
func (p *Page) Images() []Image { return p.images }
func (p *Page) ObjLinks() []ObjLink { return p.objLinks }
func (p *Page) WebLinks() []WebLink { return p.webLinks }
func (p *Page) Structures() []Structure { return p.structures }

// CharsInArea returns every character whose origin lies within rect, using
// a two-level binary search over y-buckets then x-within-bucket: O(log N + k)
// for k hits.
func (p *Page) CharsInArea(rect geom.Rectangle) []Character {
	lo := sort.Search(len(p.yIndex), func(i int) bool { return p.yIndex[i].roundedY >= rect.Bottom })
	hi := sort.Search(len(p.yIndex), func(i int) bool { return p.yIndex[i].roundedY > rect.Top })

	var out []Character
	for _, b := range p.yIndex[lo:hi] {
		idx := b.idx
		xlo := sort.Search(len(idx), func(i int) bool { return p.chars[idx[i]].Origin.X >= rect.Left })
		xhi := sort.Search(len(idx), func(i int) bool { return p.chars[idx[i]].Origin.X > rect.Right })
		for _, ci := range idx[xlo:xhi] {
			out = append(out, p.chars[ci])
		}
	}
	return out
}

// TextInArea concatenates the unicode content of CharsInArea in provider
// (not reading) order; callers needing reading order should go through
// internal/layout's CharLine assembly instead.
func (p *Page) TextInArea(rect geom.Rectangle) string {
	chars := p.CharsInArea(rect)
	var b strings.Builder
	for _, c := range chars {
		b.WriteRune(c.Unicode)
	}
	return b.String()
}

// FindMatch is one whole-word consecutive match of Find.
type FindMatch struct {
	CharIndex int
	Count int
}

// Find yields consecutive whole-word matches of s among the page's
// characters in provider order.
func (p *Page) Find(s string, caseSensitive bool) []FindMatch {
	if s == "" {
		return nil
	}
	target := s
	if !caseSensitive {
		target = cases.Fold().String(s)
	}
	runes := []rune(target)
	boundaries := p.wordBoundaries()
	var matches []FindMatch
	for start := 0; start+len(runes) <= len(p.chars); start++ {
		ok := true
		for j, r := range runes {
			cr := p.chars[start+j].Unicode
			if !caseSensitive {
				cr = []rune(cases.Fold().String(string(cr)))[0]
			}
			if cr != r {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		end := start + len(runes)
		if !boundaries[start] || !boundaries[end] {
			continue
		}
		matches = append(matches, FindMatch{CharIndex: start, Count: len(runes)})
	}
	return matches
}

// wordBoundaries reports, for every rune offset 0..len(p.chars), whether a
// UAX#29 word-segment boundary falls there. Used by Find in place of an
// ASCII letter/digit heuristic so "whole word" holds for the accented and
// CJK vendor text datasheets actually contain.
func (p *Page) wordBoundaries() []bool {
	var b strings.Builder
	for _, c := range p.chars {
		b.WriteRune(c.Unicode)
	}
	content := []byte(b.String())

	bounds := make([]bool, len(p.chars)+1)
	bounds[0] = true
	bounds[len(p.chars)] = true

	runeIdx := 0
	seg := words.NewSegmenter(content)
	for seg.Next() {
		bounds[runeIdx] = true
		runeIdx += utf8.RuneCount(seg.Value())
	}
	return bounds
}
