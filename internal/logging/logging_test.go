package logging

import (
	"testing"

	"github.com/mcudoc/refdoc/internal/geom"
)

func TestNewBuildsLoggerForEachLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", ""} {
		l, err := New(level)
		if err != nil {
			t.Fatalf("New(%q): %v", level, err)
		}
		if l == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	var l Logger = Nop{}
	l.Warning("doc.pdf", 1, geom.Rectangle{}, "anomaly %d", 1)
	l.Error("doc.pdf", "table", "invariant", nil)
	if err := l.Sync(); err != nil {
		t.Fatalf("Nop.Sync() = %v, want nil", err)
	}
}
