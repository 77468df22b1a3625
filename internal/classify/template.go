// Package classify implements the vendor page-classification policy:
// per-template area/spacing/line-size/color rules and the graphics-in-area
// caption/table/figure classifier.
package classify

import (
	"strings"

	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
)

// Area is a named rectangular sub-region of a page.
type Area struct {
	ID string
	Content []geom.Rectangle
}

// Spacing carries the tolerances that drive every downstream layout decision.
type Spacing struct {
	XEm, XLeft, XRight, XContent float64
	YEm, YTLine float64
	LH float64 // line-height multiplier
	SC float64 // sub/superscript merge tolerance
	TH float64 // bold-fraction header threshold
}

// LineSizeBucket buckets a line's height into a named size class.
type LineSizeBucket string

const (
	SizeH1 LineSizeBucket = "h1"
	SizeH2 LineSizeBucket = "h2"
	SizeH3 LineSizeBucket = "h3"
	SizeH4 LineSizeBucket = "h4"
	SizeN LineSizeBucket = "n"
	SizeFN LineSizeBucket = "fn"
)

// Template is a vendor policy object selected by Producer metadata.
type Template interface {
	Name() string
	Areas(pageWidth, pageHeight float64, rotation int) []Area
	Spacing(rotation int) Spacing
	LineSize(height float64) LineSizeBucket
	ColorName(rgba uint32) string
}

// Select returns the template matching producer, falling back to
// black-white with the caller expected to log a warning for unknown
// producers rather than failing outright.
func Select(producer string) (Template, bool) {
	p := strings.ToLower(producer)
	switch {
	case strings.Contains(p, "antenna house"):
		return NewBlueGray(), true
	case strings.Contains(p, "acrobat") || strings.Contains(p, "distiller") || strings.Contains(p, "pdflib"):
		return NewBlackWhite(), true
	default:
		return NewBlackWhite(), false
	}
}

// IsBoilerplate reports whether a page's top-area text matches the
// table-of-contents/list-of-figures/index boilerplate patterns, used by
// the --all toggle to decide whether a front-matter page should be
// skipped during conversion.
func IsBoilerplate(topText string) bool {
	t := strings.TrimSpace(topText)
	for _, prefix := range []string{"Contents", "List of", "Index"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// charBold reports whether a character counts as bold for header-detection
// purposes, shared by both templates.
func charBold(c pdfmodel.Character) bool { return c.IsBold() }
