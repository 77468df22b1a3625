package classify

import "github.com/mcudoc/refdoc/internal/geom"

// BlueGray is the Antenna House-producer template used for most
// microcontroller reference manuals, including a two-column datasheet
// special case.
type BlueGray struct{}

// NewBlueGray returns the blue-gray template.
func NewBlueGray() *BlueGray { return &BlueGray{} }

func (BlueGray) Name() string { return "blue_gray" }

func (BlueGray) Areas(w, h float64, rotation int) []Area {
	top := geom.NewRectangle(0.06*w, 0.93*h, 0.94*w, 0.985*h)
	var content []geom.Rectangle
	if w > h*1.3 {
		// two-column datasheet layout: split content into left/right halves
		content = []geom.Rectangle{
			geom.NewRectangle(0.06*w, 0.06*h, 0.48*w, 0.90*h),
			geom.NewRectangle(0.52*w, 0.06*h, 0.94*w, 0.90*h),
		}
	} else {
		content = []geom.Rectangle{geom.NewRectangle(0.07*w, 0.06*h, 0.93*w, 0.90*h)}
	}
	if rotation == 90 || rotation == 270 {
		top = geom.NewRectangle(0.015*w, 0.06*h, 0.07*w, 0.94*h)
	}
	return []Area{
		{ID: "top", Content: []geom.Rectangle{top}},
		{ID: "content", Content: content},
	}
}

func (BlueGray) Spacing(rotation int) Spacing {
	s := Spacing{XEm: 1, XLeft: 0.07, XRight: 0.93, XContent: 0.09, YEm: 1, YTLine: 1.05, LH: 1.15, SC: 0.3, TH: 0.33}
	if rotation == 90 || rotation == 270 {
		s.XLeft, s.XRight = s.YTLine, s.YEm
	}
	return s
}

func (BlueGray) LineSize(height float64) LineSizeBucket {
	switch {
	case height >= 16:
		return SizeH1
	case height >= 14:
		return SizeH2
	case height >= 12:
		return SizeH3
	case height >= 10.5:
		return SizeH4
	case height < 7.5:
		return SizeFN
	default:
		return SizeN
	}
}

func (BlueGray) ColorName(rgba uint32) string {
	r, g, b := byte(rgba>>24), byte(rgba>>16), byte(rgba>>8)
	switch {
	case b > r+20 && b > g+10 && b > 100:
		return "dark_blue"
	case r == g && g == b && r > 150:
		return "gray"
	case r == 0 && g == 0 && b == 0:
		return "black"
	default:
		return bucketCSSName(nearestCSSName(r, g, b))
	}
}

