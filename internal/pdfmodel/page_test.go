package pdfmodel

import "testing"

func charsOf(s string) []Character {
	out := make([]Character, 0, len(s))
	for i, r := range []rune(s) {
		out = append(out, NewTestCharacter(r, float64(i)*6, 0, 0))
	}
	return out
}

func matchText(p *Page, m FindMatch) string {
	out := make([]rune, 0, m.Count)
	for i := 0; i < m.Count; i++ {
		out = append(out, p.chars[m.CharIndex+i].Unicode)
	}
	return string(out)
}

func TestFindWholeWordCaseInsensitive(t *testing.T) {
	p := &Page{chars: charsOf("See Table 3 and table 31 for details")}

	matches := p.Find("table", false)

	if len(matches) != 2 {
		t.Fatalf("Find(%q) = %d matches, want 2: %+v", "table", len(matches), matches)
	}
	for _, m := range matches {
		if got := matchText(p, m); got != "Table" && got != "table" {
			t.Errorf("matched text = %q, want Table/table", got)
		}
	}
}

func TestFindDoesNotMatchInsideLongerWord(t *testing.T) {
	p := &Page{chars: charsOf("tableau and table")}

	matches := p.Find("table", true)

	if len(matches) != 1 {
		t.Fatalf("Find(%q) = %d matches, want 1 (not matching inside 'tableau'): %+v", "table", len(matches), matches)
	}
	if got := matchText(p, matches[0]); got != "table" {
		t.Errorf("matched text = %q, want %q", got, "table")
	}
}

func TestFindCaseSensitive(t *testing.T) {
	p := &Page{chars: charsOf("Reset Reset reset")}

	matches := p.Find("Reset", true)

	if len(matches) != 2 {
		t.Fatalf("Find(%q, caseSensitive) = %d matches, want 2", "Reset", len(matches))
	}
}

func TestFindEmptyQueryReturnsNil(t *testing.T) {
	p := &Page{chars: charsOf("anything")}
	if matches := p.Find("", false); matches != nil {
		t.Errorf("Find(\"\") = %v, want nil", matches)
	}
}
