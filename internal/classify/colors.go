package classify

import (
	"strings"

	"golang.org/x/image/colornames"
)

// nearestCSSName finds the colornames.Map entry closest to (r,g,b) by
// squared Euclidean distance, grounding the vendor templates' "other"
// fallback in x/image's named-color table instead of a hand-rolled RGBA
// switch that only ever recognizes the handful of colors each template's
// author happened to think of.
func nearestCSSName(r, g, b byte) string {
	best := ""
	bestDist := -1
	for name, c := range colornames.Map {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best
}

// bucketCSSName collapses a CSS color name into the coarse buckets the
// templates' callers (this package's graphics classification and grid-line
// extraction) actually branch on, falling back to the CSS name itself for anything not already
// a named bucket.
func bucketCSSName(name string) string {
	switch {
	case strings.Contains(name, "gray"), strings.Contains(name, "grey"):
		return "gray"
	case strings.Contains(name, "blue"):
		return "dark_blue"
	case strings.Contains(name, "black"):
		return "black"
	case strings.Contains(name, "white"):
		return "white"
	default:
		return name
	}
}
