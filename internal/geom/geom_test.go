package geom

import "testing"

func TestNewRectangleNormalizesOrdering(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 10, 10},
		{10, 10, 0, 0},
		{10, 0, 0, 10},
		{-5, -5, 5, 5},
	}
	for _, c := range cases {
		r := NewRectangle(c[0], c[1], c[2], c[3])
		if r.Left > r.Right || r.Bottom > r.Top {
			t.Fatalf("rectangle from %v not normalized: %+v", c, r)
		}
	}
}

func TestJoinedIsIdempotentAndCommutative(t *testing.T) {
	a := NewRectangle(0, 0, 10, 10)
	b := NewRectangle(5, 5, 20, 3)

	if a.Joined(a) != a {
		t.Fatalf("A.Joined(A) != A: %+v", a.Joined(a))
	}
	if a.Joined(b) != b.Joined(a) {
		t.Fatalf("join not commutative: %+v vs %+v", a.Joined(b), b.Joined(a))
	}
}

func TestJoinedContainment(t *testing.T) {
	outer := NewRectangle(0, 0, 100, 100)
	inner := NewRectangle(10, 10, 20, 20)
	if !outer.ContainsRect(inner) {
		t.Fatal("expected outer to contain inner")
	}
	if outer.Joined(inner) != outer {
		t.Fatalf("A.ContainsRect(B) should imply A.Joined(B)==A, got %+v", outer.Joined(inner))
	}
}

func TestHLineOverlaps(t *testing.T) {
	a := HLine{Y: 0, X0: 0, X1: 10}
	b := HLine{Y: 0, X0: 10.005, X1: 20}
	if a.Overlaps(b, 0) {
		t.Fatal("did not expect overlap at zero tolerance")
	}
	if !a.Overlaps(b, 0.01) {
		t.Fatal("expected overlap within tolerance")
	}
}

func TestCluster1DMergesOverlapping(t *testing.T) {
	intervals := [][2]float64{{0, 1}, {0.9, 2}, {5, 6}, {5.5, 7}}
	regions := Cluster1D(len(intervals), func(i int) (float64, float64) {
		return intervals[i][0], intervals[i][1]
	}, 0.05)
	if len(regions) != 2 {
		t.Fatalf("expected 2 merged regions, got %d: %+v", len(regions), regions)
	}
}

func TestLineSpecializeAxisAligned(t *testing.T) {
	h := NewLine(Point{X: 0, Y: 5}, Point{X: 10, Y: 5}, 1)
	if h.Direction() != DirHorizontal {
		t.Fatalf("expected horizontal, got %v", h.Direction())
	}
	v := NewLine(Point{X: 5, Y: 0}, Point{X: 5, Y: 10}, 1)
	if v.Direction() != DirVertical {
		t.Fatalf("expected vertical, got %v", v.Direction())
	}
}
