package pdfmodel

import (
	"sort"

	"github.com/pkg/errors"
)

// Document wraps a DocumentProvider with per-page loading/caching and the
// document-wide bbox cache.
type Document struct {
	provider DocumentProvider
	cache *BBoxCache

	pages map[int]*Page
}

// NewDocument wraps provider. Pages are loaded lazily on first access and
// memoized.
func NewDocument(provider DocumentProvider) *Document {
	return &Document{provider: provider, cache: NewBBoxCache(), pages: make(map[int]*Page)}
}

// Metadata returns the raw document info dictionary; requires
// it contain at least "Producer" and "Author".
func (d *Document) Metadata() map[string]string { return d.provider.Metadata() }

// Producer is a convenience accessor main.go uses to select the vendor
// classification template.
func (d *Document) Producer() string { return d.provider.Metadata()["Producer"] }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.provider.PageCount() }

// Page returns the (cached) Page at index i.
func (d *Document) Page(i int) (*Page, error) {
	if p, ok := d.pages[i]; ok {
		return p, nil
	}
	pp, err := d.provider.Page(i)
	if err != nil {
		return nil, errors.Wrapf(err, "load page %d", i)
	}
	p := NewPage(i, pp, d.cache)
	d.pages[i] = p
	return p, nil
}

// Pages yields Page values for the given 0-based page numbers in order,
// stopping at the first error.
func (d *Document) Pages(numbers []int) ([]*Page, error) {
	out := make([]*Page, 0, len(numbers))
	for _, n := range numbers {
		p, err := d.Page(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// TOC returns the document outline/bookmarks, deduplicated and sorted by
// page index then level.
func (d *Document) TOC() []OutlineItem {
	items := append([]OutlineItem(nil), d.provider.TOC()...)
	seen := make(map[OutlineItem]bool, len(items))
	deduped := items[:0]
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		deduped = append(deduped, it)
	}
	sort.Slice(deduped, func(a, b int) bool {
		if deduped[a].PageIndex != deduped[b].PageIndex {
			return deduped[a].PageIndex < deduped[b].PageIndex
		}
		return deduped[a].Level < deduped[b].Level
	})
	return deduped
}

// Destinations returns the named-destination -> page-index map.
func (d *Document) Destinations() map[string]int { return d.provider.Destinations() }

// IdentifierPermanent and IdentifierChanging return the two halves of the
// PDF file ID array, when the provider exposes one via Metadata under the
// "ID0"/"ID1" keys (pdfcpu surfaces these as hex strings).
func (d *Document) IdentifierPermanent() string { return d.provider.Metadata()["ID0"] }
func (d *Document) IdentifierChanging() string { return d.provider.Metadata()["ID1"] }

// Close releases the underlying provider.
func (d *Document) Close() error { return d.provider.Close() }

// BBoxCache exposes the document-wide cache so callers assembling pages out
// of band (e.g. parallel prepass) can warm it serially first.
func (d *Document) BBoxCache() *BBoxCache { return d.cache }
