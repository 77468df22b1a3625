package geom

// Region is a one-dimensional interval [V0, V1] accumulating the objects
// that were merged into it, plus any nested subregions found by a second
// clustering pass along the other axis. It is the hot primitive behind
// graphic clustering (two passes: vertical then horizontal) and is generic
// enough to reuse for any "merge intervals within tolerance" problem.
type Region struct {
	V0, V1 float64
	Objs []int // indices into the caller's object slice, in insertion order
	Subregions []Region
}

// NewRegion starts a region covering a single object's interval.
func NewRegion(v0, v1 float64, obj int) Region {
	return Region{V0: v0, V1: v1, Objs: []int{obj}}
}

// Overlaps reports whether [v0,v1] intersects the region's interval within
// atol.
func (r Region) Overlaps(v0, v1, atol float64) bool {
	return r.V0 <= v1+atol && v0 <= r.V1+atol
}

// Contains reports whether v lies within the region's interval within atol.
func (r Region) Contains(v, atol float64) bool {
	return r.V0-atol <= v && v <= r.V1+atol
}

// Delta returns the bounds the region would have after covering [v0,v1]:
// the lower of V0 and v0, and the higher of V1 and v1. Extend assigns them
// to V0/V1.
func (r Region) Delta(v0, v1 float64) (loV, hiV float64) {
	loV, hiV = r.V0, r.V1
	if v0 < loV {
		loV = v0
	}
	if v1 > hiV {
		hiV = v1
	}
	return loV, hiV
}

// Extend grows the region to cover [v0,v1] and appends obj to its members.
func (r *Region) Extend(v0, v1 float64, obj int) {
	r.V0, r.V1 = r.Delta(v0, v1)
	r.Objs = append(r.Objs, obj)
}

// Cluster1D performs a single-axis region merge: objects are visited in
// the order given (callers sort ascending on the
// clustering axis first); each object joins the first region whose interval
// overlaps its own within atol, extending that region, or else opens a new
// region. This is the shared core of both the vertical and the horizontal
// pass of graphic clustering.
func Cluster1D(n int, interval func(i int) (v0, v1 float64), atol float64) []Region {
	var regions []Region
	for i := 0; i < n; i++ {
		v0, v1 := interval(i)
		joined := false
		for ri := range regions {
			if regions[ri].Overlaps(v0, v1, atol) {
				regions[ri].Extend(v0, v1, i)
				joined = true
				break
			}
		}
		if !joined {
			regions = append(regions, NewRegion(v0, v1, i))
		}
	}
	return regions
}
