package classify

import "github.com/mcudoc/refdoc/internal/geom"

// BlackWhite is the Acrobat-producer template: monochrome datasheets with
// tight margins and no vendor color coding.
type BlackWhite struct{}

// NewBlackWhite returns the black-white template.
func NewBlackWhite() *BlackWhite { return &BlackWhite{} }

func (BlackWhite) Name() string { return "black_white" }

func (BlackWhite) Areas(w, h float64, rotation int) []Area {
	top := geom.NewRectangle(0.05*w, 0.92*h, 0.95*w, 0.98*h)
	content := geom.NewRectangle(0.08*w, 0.06*h, 0.92*w, 0.90*h)
	if rotation == 90 || rotation == 270 {
		top, content = content, top
	}
	return []Area{
		{ID: "top", Content: []geom.Rectangle{top}},
		{ID: "content", Content: []geom.Rectangle{content}},
	}
}

func (BlackWhite) Spacing(rotation int) Spacing {
	s := Spacing{XEm: 1, XLeft: 0.08, XRight: 0.92, XContent: 0.10, YEm: 1, YTLine: 1.1, LH: 1.2, SC: 0.35, TH: 0.33}
	if rotation == 90 || rotation == 270 {
		s.XLeft, s.XRight = s.YTLine, s.YEm
	}
	return s
}

func (BlackWhite) LineSize(height float64) LineSizeBucket {
	switch {
	case height >= 18:
		return SizeH1
	case height >= 15:
		return SizeH2
	case height >= 13:
		return SizeH3
	case height >= 11:
		return SizeH4
	case height < 8:
		return SizeFN
	default:
		return SizeN
	}
}

func (BlackWhite) ColorName(rgba uint32) string {
	r, g, b := byte(rgba>>24), byte(rgba>>16), byte(rgba>>8)
	switch {
	case r == 0 && g == 0 && b == 0:
		return "black"
	case r > 180 && g > 180 && b > 180:
		return "white"
	case r == g && g == b:
		return "gray"
	default:
		return bucketCSSName(nearestCSSName(r, g, b))
	}
}

