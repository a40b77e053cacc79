package profile

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// indexed is a cloud point stored in the tree together with its position
// in the cloud.
type indexed struct {
	geom.Point
	i int
}

type rtreeFinder struct {
	cloud                  Cloud
	tree                   *rtree.Rtree
	minX, minY, maxX, maxY float64
	span                   float64 // first search half-width
	empty                  bool
}

// RTree indexes the cloud in an R-tree and answers queries by searching
// boxes of doubling size around the query until the best hit is well
// inside the box.
func RTree(c Cloud) Finder {
	f := &rtreeFinder{cloud: c, tree: rtree.NewTree(25, 50)}
	var ok bool
	f.minX, f.minY, f.maxX, f.maxY, ok = c.extent()
	if !ok {
		f.empty = true
		return f
	}
	for i, p := range c {
		if !finite(p[0]) || !finite(p[1]) {
			continue
		}
		f.tree.Insert(&indexed{Point: geom.Point{X: p[0], Y: p[1]}, i: i})
	}
	w, h := f.maxX-f.minX, f.maxY-f.minY
	f.span = math.Hypot(w, h) / math.Sqrt(float64(len(c)))
	if f.span == 0 || !finite(f.span) {
		f.span = 1
	}
	return f
}

func (f *rtreeFinder) covers(x, y, half float64) bool {
	return x-half <= f.minX && x+half >= f.maxX && y-half <= f.minY && y+half >= f.maxY
}

func (f *rtreeFinder) Nearest(x, y float64) int {
	if f.empty || !finite(x) || !finite(y) {
		return linear(f.cloud).Nearest(x, y)
	}
	for half := f.span; ; half *= 2 {
		box := &geom.Bounds{
			Min: geom.Point{X: x - half, Y: y - half},
			Max: geom.Point{X: x + half, Y: y + half},
		}
		best, bestD := -1, math.Inf(1)
		for _, hit := range f.tree.SearchIntersect(box) {
			i := hit.(*indexed).i
			p := f.cloud[i]
			d := math.Hypot(p[0]-x, p[1]-y)
			if closer(d, i, bestD, best) {
				best, bestD = i, d
			}
		}
		// Every point at distance <= bestD lies well inside the box once
		// bestD is at most half of it; a box with room around the whole
		// cloud has seen every point.
		all := f.covers(x, y, half/2)
		if best >= 0 && (bestD <= half/2 || all) {
			return best
		}
		if all || math.IsInf(half, 0) {
			return linear(f.cloud).Nearest(x, y)
		}
	}
}
