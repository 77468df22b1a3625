package htmlout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcudoc/refdoc/internal/docast"
)

func TestWriteFileProducesDoctypeAndHTMLRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	document := docast.NewNode(docast.KindDocument)
	root := FormatDocument(document, "../style.css")
	require.NoError(t, WriteFile(root, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, "<html>")
	require.Contains(t, out, `href="../style.css"`)
}
