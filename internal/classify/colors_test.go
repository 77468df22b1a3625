package classify

import "testing"

func TestNearestCSSNameFindsExactMatch(t *testing.T) {
	if got := nearestCSSName(255, 0, 0); got != "red" {
		t.Errorf("nearestCSSName(255,0,0) = %q, want %q", got, "red")
	}
}

func TestNearestCSSNameFindsClosestForOffExact(t *testing.T) {
	got := nearestCSSName(250, 5, 5)
	if got != "red" {
		t.Errorf("nearestCSSName(250,5,5) = %q, want %q", got, "red")
	}
}

func TestBucketCSSNameCollapsesKnownBuckets(t *testing.T) {
	cases := map[string]string{
		"darkgray":   "gray",
		"lightgrey":  "gray",
		"steelblue":  "dark_blue",
		"cadetblue":  "dark_blue",
		"black":      "black",
		"white":      "white",
		"lightgreen": "lightgreen",
	}
	for in, want := range cases {
		if got := bucketCSSName(in); got != want {
			t.Errorf("bucketCSSName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBlackWhiteColorNameFallsBackToCSSBucket(t *testing.T) {
	bw := NewBlackWhite()
	name := bw.ColorName(uint32(0x22AA5500))
	if name == "" {
		t.Fatal("ColorName returned empty string")
	}
}

func TestBlueGrayColorNameFallsBackToCSSBucket(t *testing.T) {
	bg := NewBlueGray()
	name := bg.ColorName(uint32(0x22AA5500))
	if name == "" {
		t.Fatal("ColorName returned empty string")
	}
}
