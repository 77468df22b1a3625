package htmlout

import (
	"bufio"
	"html"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// flowTags are elements whose content is a run of text interleaved with
// inline markup (b/i/u/sup/sub/span/br) and rendered on a single line,
// mirroring how _format_html_fmt splices markup into running prose.
var flowTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true,
	"p": true, "li": true, "caption": true, "th": true, "td": true,
}

var voidTags = map[string]bool{"link": true, "br": true}

// writeDocument serializes html, the root <html> element built by
// FormatDocument, as a pretty-printed document with a doctype preamble,
// matching write_html's lxml output.
func writeDocument(w io.Writer, root *elem) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("<!DOCTYPE html>\n"); err != nil {
		return err
	}
	writeNode(bw, root, 0)
	return bw.Flush()
}

func writeNode(w *bufio.Writer, e *elem, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if flowTags[e.Tag] {
		w.WriteString(indent)
		w.WriteString(openTag(e))
		w.WriteString(html.EscapeString(e.Text))
		for _, c := range e.Children {
			writeInline(w, c)
		}
		w.WriteString("</" + e.Tag + ">\n")
		return
	}

	w.WriteString(indent)
	w.WriteString(openTag(e))
	if voidTags[e.Tag] {
		w.WriteString("\n")
		return
	}
	w.WriteString("\n")
	if e.Text != "" {
		w.WriteString(indent + "  " + html.EscapeString(e.Text) + "\n")
	}
	for _, c := range e.Children {
		writeNode(w, c, depth+1)
	}
	w.WriteString(indent + "</" + e.Tag + ">\n")
}

func writeInline(w *bufio.Writer, e *elem) {
	if voidTags[e.Tag] {
		w.WriteString("<" + e.Tag + "/>")
	} else {
		w.WriteString(openTag(e))
		w.WriteString(html.EscapeString(e.Text))
		for _, c := range e.Children {
			writeInline(w, c)
		}
		w.WriteString("</" + e.Tag + ">")
	}
	w.WriteString(html.EscapeString(e.Tail))
}

func openTag(e *elem) string {
	s := "<" + e.Tag
	for _, k := range e.attrKeys {
		s += " " + k + `="` + html.EscapeString(e.attrs[k]) + `"`
	}
	return s + ">"
}

// WriteFile renders root to path, writing to a temporary file in the same
// directory and atomically renaming it into place so a reader never
// observes a partially written document.
func WriteFile(root *elem, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".refdoc-html-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := writeDocument(tmp, root); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := unix.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
