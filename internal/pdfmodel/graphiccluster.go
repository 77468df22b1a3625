package pdfmodel

import (
	"math"
	"sort"

	"github.com/mcudoc/refdoc/internal/geom"
)

// graphicObject is the uniform surface GraphicClusters clusters over: paths
// and images both present four corner points via geom, so clustering code
// never needs to distinguish them.
type graphicObject struct {
	bbox geom.Rectangle
	isPath bool
	pathIdx int
	imgIdx int
}

// GraphicCluster is a rectangular region containing the paths/images that
// co-locate on the page,
type GraphicCluster struct {
	BBox geom.Rectangle
	Paths []Path
	Images []Image
}

// GraphicClusterPredicate filters which paths/images participate in
// clustering (e.g. excluding ones already claimed by a prior classification
// pass).
type GraphicClusterPredicate func(obj any) bool

// GraphicClusters performs the two-pass vertical-then-horizontal region
// merge describes: vertical regions first (by y-extent), then
// horizontal subregions within each (by x-extent). atol defaults to
// 0.01*min(width,height) when 0 is passed.
func (p *Page) GraphicClusters(predicate GraphicClusterPredicate, atol float64) []GraphicCluster {
	if atol == 0 {
		atol = 0.01 * math.Min(p.width, p.height)
	}

	var objs []graphicObject
	for i, pth := range p.paths {
		if predicate != nil && !predicate(pth) {
			continue
		}
		objs = append(objs, graphicObject{bbox: pth.BBox(), isPath: true, pathIdx: i})
	}
	for i, im := range p.images {
		if predicate != nil && !predicate(im) {
			continue
		}
		objs = append(objs, graphicObject{bbox: im.BBox(), isPath: false, imgIdx: i})
	}
	if len(objs) == 0 {
		return nil
	}

	sort.SliceStable(objs, func(a, b int) bool { return objs[a].bbox.Bottom < objs[b].bbox.Bottom })

	vregions := geom.Cluster1D(len(objs), func(i int) (float64, float64) {
		return objs[i].bbox.Bottom, objs[i].bbox.Top
	}, atol)

	var clusters []GraphicCluster
	for _, vr := range vregions {
		members := make([]graphicObject, len(vr.Objs))
		for i, oi := range vr.Objs {
			members[i] = objs[oi]
		}
		sort.SliceStable(members, func(a, b int) bool { return members[a].bbox.Left < members[b].bbox.Left })

		hregions := geom.Cluster1D(len(members), func(i int) (float64, float64) {
			return members[i].bbox.Left, members[i].bbox.Right
		}, atol)

		for _, hr := range hregions {
			gc := GraphicCluster{}
			var bbox geom.Rectangle
			first := true
			for _, mi := range hr.Objs {
				m := members[mi]
				if first {
					bbox = m.bbox
					first = false
				} else {
					bbox = bbox.Joined(m.bbox)
				}
				if m.isPath {
					gc.Paths = append(gc.Paths, p.paths[m.pathIdx])
				} else {
					gc.Images = append(gc.Images, p.images[m.imgIdx])
				}
			}
			// If this vertical region produced a single horizontal
			// subregion, the cluster keeps the full vertical extent;
			// otherwise each subregion tightens to its own members' height.
			if len(hregions) == 1 {
				bbox.Bottom, bbox.Top = vr.V0, vr.V1
			}
			gc.BBox = bbox
			clusters = append(clusters, gc)
		}
	}

	sort.SliceStable(clusters, func(a, b int) bool {
		if clusters[a].BBox.Top != clusters[b].BBox.Top {
			return clusters[a].BBox.Top > clusters[b].BBox.Top
		}
		return clusters[a].BBox.Left < clusters[b].BBox.Left
	})
	return clusters
}
