package pdfmodel

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugPDFWithNoBoxesCopiesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	want := []byte("%PDF-1.4 fixture content")
	if err := os.WriteFile(src, want, 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteDebugPDF(src, out, map[int][]BoxAnnotation{}); err != nil {
		t.Fatalf("WriteDebugPDF: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("output content = %q, want %q", got, want)
	}
}

func TestWriteDebugPDFWithNoBoxesMissingSourceErrors(t *testing.T) {
	dir := t.TempDir()
	err := WriteDebugPDF(filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.pdf"), nil)
	if err == nil {
		t.Fatal("expected error for missing source file, got nil")
	}
}
