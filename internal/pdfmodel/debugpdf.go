package pdfmodel

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcolor "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mcudoc/refdoc/internal/geom"
)

// BoxAnnotation is one detected-object bbox to stamp onto a debug PDF via
// the --pdf verb: every table/figure found during reconstruction, colored
// by kind so a reviewer can see what the page classifier found.
type BoxAnnotation struct {
	BBox geom.Rectangle
	Color pdfcolor.SimpleColor
	Label string
}

var (
	ColorTable = pdfcolor.SimpleColor{R: 0, G: 0.4, B: 1}
	ColorFigure = pdfcolor.SimpleColor{R: 0, G: 0.7, B: 0}
)

// WriteDebugPDF stamps boxesByPage (1-indexed page numbers) onto srcPath as
// highlight annotations and writes the result to outPath, via
// model.NewHighlightAnnotation + api.AddAnnotationsMapFile.
func WriteDebugPDF(srcPath, outPath string, boxesByPage map[int][]BoxAnnotation) error {
	annotMap := make(map[int][]model.AnnotationRenderer)
	id := 0
	for page, boxes := range boxesByPage {
		for _, b := range boxes {
			id++
			rect := types.NewRectangle(b.BBox.Left, b.BBox.Bottom, b.BBox.Right, b.BBox.Top)
			ql := types.NewQuadLiteralForRect(rect)
			ar := model.NewHighlightAnnotation(
				*rect, 0, b.Label, fmt.Sprintf("refdoc_%d", id), "",
				0, &b.Color, 0, 0, 0, "", nil, nil, "", "",
				types.QuadPoints{*ql},
			)
			annotMap[page] = append(annotMap[page], ar)
		}
	}
	if len(annotMap) == 0 {
		return copyFile(srcPath, outPath)
	}
	conf := model.NewDefaultConfiguration()
	if err := api.AddAnnotationsMapFile(srcPath, outPath, annotMap, conf, true); err != nil {
		return fmt.Errorf("stamping debug annotations: %w", err)
	}
	return nil
}

func copyFile(srcPath, outPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()
	dst, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s to %s: %w", srcPath, outPath, err)
	}
	return nil
}
