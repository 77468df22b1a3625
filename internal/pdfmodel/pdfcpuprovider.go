package pdfmodel

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// PDFCPUProvider implements DocumentProvider on top of pdfcpu. pdfcpu is a
// structural PDF manipulation library, not a glyph-level renderer, so the
// glyph/path/image iteration below is a minimal content-stream tokenizer
// built on the xref table's dereferenced stream bytes: read the bytes
// pdfcpu hands back, then interpret the content-stream operators directly.
type PDFCPUProvider struct {
	ctx  *model.Context
	path string
}

// OpenPDFCPUProvider opens path with pdfcpu and validates/optimizes the
// cross-reference table before any content-stream interpretation begins.
func OpenPDFCPUProvider(path string) (*PDFCPUProvider, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "validate %s", path)
	}
	if err := api.OptimizeContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "optimize %s", path)
	}
	return &PDFCPUProvider{ctx: ctx, path: path}, nil
}

// Metadata returns the document info dictionary plus the file ID halves
// under "ID0"/"ID1".
func (pr *PDFCPUProvider) Metadata() map[string]string {
	out := map[string]string{}
	if pr.ctx.Info != nil {
		if pr.ctx.Info.Producer != "" {
			out["Producer"] = pr.ctx.Info.Producer
		}
		if pr.ctx.Info.Author != "" {
			out["Author"] = pr.ctx.Info.Author
		}
		if pr.ctx.Info.Title != "" {
			out["Title"] = pr.ctx.Info.Title
		}
	}
	if len(pr.ctx.ID) == 2 {
		out["ID0"] = string(pr.ctx.ID[0])
		out["ID1"] = string(pr.ctx.ID[1])
	}
	if _, ok := out["Producer"]; !ok {
		out["Producer"] = ""
	}
	if _, ok := out["Author"]; !ok {
		out["Author"] = ""
	}
	return out
}

// PageCount returns the number of pages.
func (pr *PDFCPUProvider) PageCount() int {
	return pr.ctx.PageCount
}

// Page returns a lazily tokenized PageProvider for 0-based index i.
func (pr *PDFCPUProvider) Page(i int) (PageProvider, error) {
	pageNr := i + 1
	dim, err := api.PageDim(pr.ctx, pageNr)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d dimensions", pageNr)
	}
	boxes, err := api.PageBoundaries(pr.ctx, pageNr)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d boundaries", pageNr)
	}
	rotate, err := pr.ctx.PageRotation(pageNr)
	if err != nil {
		rotate = 0
	}

	content, err := pr.ctx.PageContent(pageNr)
	if err != nil {
		// A page with no content stream (blank page) is not a structural
		// violation at the provider layer; it surfaces to callers as a
		// page with zero primitives.
		content = nil
	}

	mediaBox := boxes.MediaBox
	if mediaBox == nil {
		mediaBox = types.NewRectangle(0, 0, dim.Width, dim.Height)
	}

	tok := tokenizeContentStream(content)
	return &pdfcpuPage{
		width:    mediaBox.Width(),
		height:   mediaBox.Height(),
		rotation: rotate,
		label:    pageLabel(pageNr),
		glyphs:   tok.glyphs,
		paths:    tok.paths,
		images:   tok.images,
	}, nil
}

func pageLabel(pageNr int) string {
	return "p" + itoa(pageNr)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// TOC walks the document outline into flat OutlineItem entries.
func (pr *PDFCPUProvider) TOC() []OutlineItem {
	bms, err := api.Bookmarks(pr.ctx)
	if err != nil {
		return nil
	}
	var out []OutlineItem
	var walk func(items []types.Bookmark, level int)
	walk = func(items []types.Bookmark, level int) {
		for _, b := range items {
			out = append(out, OutlineItem{Level: level, Title: b.Title, PageIndex: b.PageFrom - 1})
			if len(b.Kids) > 0 {
				walk(b.Kids, level+1)
			}
		}
	}
	walk(bms, 0)
	return out
}

// Destinations always returns an empty map: this provider does not read
// the document's named destinations.
func (pr *PDFCPUProvider) Destinations() map[string]int {
	return map[string]int{}
}

// Close releases nothing and always returns nil.
func (pr *PDFCPUProvider) Close() error {
	return nil
}

// pdfcpuPage is the PageProvider implementation backing PDFCPUProvider.
type pdfcpuPage struct {
	width, height float64
	rotation      int
	label         string
	glyphs        []GlyphPrimitive
	paths         []PathPrimitive
	images        []ImagePrimitive
}

func (p *pdfcpuPage) Width() float64    { return p.width }
func (p *pdfcpuPage) Height() float64   { return p.height }
func (p *pdfcpuPage) Rotation() int     { return p.rotation }
func (p *pdfcpuPage) Label() string     { return p.label }
func (p *pdfcpuPage) GlyphCount() int   { return len(p.glyphs) }
func (p *pdfcpuPage) Glyph(i int) GlyphPrimitive { return p.glyphs[i] }
func (p *pdfcpuPage) Paths() []PathPrimitive    { return p.paths }
func (p *pdfcpuPage) Images() []ImagePrimitive  { return p.images }
func (p *pdfcpuPage) Links() []LinkPrimitive    { return nil }
func (p *pdfcpuPage) WebLinks() []WebLinkPrimitive { return nil }
func (p *pdfcpuPage) Structures() []StructurePrimitive { return nil }
