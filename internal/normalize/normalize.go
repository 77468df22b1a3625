package normalize

import "github.com/mcudoc/refdoc/internal/docast"

// Normalize runs the full document-wide pass in source order: lines are
// wrapped before anything inspects paragraph structure, captions are
// reattached before paragraph unwrapping collapses their wrapper, and
// registers/tables are folded last, once headings have settled into their
// final section/head1..4 shape.
func Normalize(document *docast.Node) *docast.Node {
	document = Lines(document)
	document = Captions(document)
	document = Lists(document)
	document = Paragraphs(document)
	document = Headings(document)
	document = Registers(document)
	document = Tables(document)
	return document
}
