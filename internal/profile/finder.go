package profile

import (
	"fmt"
	"math"
)

// Finder locates the cloud point nearest to a horizontal position and
// returns its index. On exact distance ties it returns the lowest index.
// Finders are read-only and safe for concurrent use.
type Finder interface {
	Nearest(x, y float64) int
}

// Strategy builds a Finder over a non-empty cloud.
type Strategy func(Cloud) Finder

// ParseStrategy maps "linear", "bucket" and "rtree" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "linear", "":
		return Linear, nil
	case "bucket":
		return Bucketed(0), nil
	case "rtree":
		return RTree, nil
	}
	return nil, fmt.Errorf("profile: unknown strategy %q", name)
}

// Linear scans every point for every query.
func Linear(c Cloud) Finder { return linear(c) }

type linear Cloud

func (l linear) Nearest(x, y float64) int {
	best, bestD := 0, math.Inf(1)
	for i := range l {
		d := math.Hypot(l[i][0]-x, l[i][1]-y)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// closer orders candidates found out of index order the way a linear scan
// would: smaller distance first, then smaller index.
func closer(d float64, i int, bestD float64, best int) bool {
	return d < bestD || (d == bestD && i < best)
}

// maxBuckets caps the size of a bucket grid.
const maxBuckets = 1 << 22

// Bucketed hashes the cloud into square buckets of the given side and
// searches outward ring by ring. A non-positive cellSize picks a side that
// puts about one point in each bucket.
func Bucketed(cellSize float64) Strategy {
	return func(c Cloud) Finder { return newBuckets(c, cellSize) }
}

type buckets struct {
	cloud      Cloud
	minX, minY float64
	cell       float64
	w, h       int
	cells      [][]int // row * w + col, indices ascending
	empty      bool    // no finite points
}

func newBuckets(c Cloud, cellSize float64) *buckets {
	b := &buckets{cloud: c}
	minX, minY, _, _, ok := c.extent()
	if !ok {
		b.empty = true
		return b
	}
	bound := c.Bound()
	width, height := bound.Width(), bound.Height()
	if cellSize <= 0 || !finite(cellSize) {
		cellSize = math.Sqrt(width * height / float64(len(c)))
		if cellSize == 0 || !finite(cellSize) {
			cellSize = math.Max(width, height) / math.Sqrt(float64(len(c)))
		}
		if cellSize == 0 || !finite(cellSize) {
			cellSize = 1
		}
	}
	for width/cellSize >= maxBuckets || height/cellSize >= maxBuckets ||
		(int(width/cellSize)+1)*(int(height/cellSize)+1) > maxBuckets {
		cellSize *= 2
	}
	b.w = int(width/cellSize) + 1
	b.h = int(height/cellSize) + 1
	b.minX, b.minY, b.cell = minX, minY, cellSize
	b.cells = make([][]int, b.w*b.h)
	for i, p := range c {
		if !finite(p[0]) || !finite(p[1]) {
			continue
		}
		col, row := b.bucket(p[0], p[1])
		col = clamp(col, 0, b.w-1)
		row = clamp(row, 0, b.h-1)
		b.cells[row*b.w+col] = append(b.cells[row*b.w+col], i)
	}
	return b
}

func (b *buckets) bucket(x, y float64) (col, row int) {
	fx := math.Floor((x - b.minX) / b.cell)
	fy := math.Floor((y - b.minY) / b.cell)
	// Keep far queries inside int range; ring search starts at the grid.
	const lim = 1 << 40
	return int(math.Max(-lim, math.Min(lim, fx))), int(math.Max(-lim, math.Min(lim, fy)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (b *buckets) Nearest(x, y float64) int {
	if b.empty || !finite(x) || !finite(y) {
		return linear(b.cloud).Nearest(x, y)
	}
	qc, qr := b.bucket(x, y)

	// Rings closer than this do not touch the grid.
	r0 := max(0, -qc, qc-(b.w-1), -qr, qr-(b.h-1))
	rMax := max(qc, b.w-1-qc, qr, b.h-1-qr, r0)

	// Past this many buckets a plain scan is cheaper.
	budget := 2*len(b.cloud) + 16
	best, bestD := -1, math.Inf(1)
	visit := func(col, row int) {
		budget--
		for _, i := range b.cells[row*b.w+col] {
			p := b.cloud[i]
			d := math.Hypot(p[0]-x, p[1]-y)
			if closer(d, i, bestD, best) {
				best, bestD = i, d
			}
		}
	}
	for r := r0; r <= rMax; r++ {
		colLo, colHi := clamp(qc-r, 0, b.w-1), clamp(qc+r, 0, b.w-1)
		rowLo, rowHi := clamp(qr-r, 0, b.h-1), clamp(qr+r, 0, b.h-1)
		if qr-r >= 0 {
			for col := colLo; col <= colHi && budget >= 0; col++ {
				visit(col, qr-r)
			}
		}
		if r > 0 && qr+r <= b.h-1 {
			for col := colLo; col <= colHi && budget >= 0; col++ {
				visit(col, qr+r)
			}
		}
		left, right := qc-r >= 0, r > 0 && qc+r <= b.w-1
		if left || right {
			for row := max(rowLo, qr-r+1); row <= min(rowHi, qr+r-1) && budget >= 0; row++ {
				if left {
					visit(qc-r, row)
				}
				if right {
					visit(qc+r, row)
				}
			}
		}
		if budget < 0 {
			return linear(b.cloud).Nearest(x, y)
		}
		// Unvisited points sit at least r cells away; one ring of slack
		// absorbs rounding in the bucket assignment.
		if best >= 0 && bestD < float64(r-1)*b.cell {
			break
		}
	}
	if best < 0 {
		return linear(b.cloud).Nearest(x, y)
	}
	return best
}
