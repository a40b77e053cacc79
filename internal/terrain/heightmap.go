// Package terrain synthesizes square heightmaps and walks discrete lines
// across them.
package terrain

import (
	"github.com/paulmach/go.geo"
)

// Heightmap is a square (n+1)x(n+1) grid of elevations, n a power of two.
// It is built once by a generator and read-only afterwards.
type Heightmap struct {
	size    int
	surface *geo.Surface // Grid[x][y], bound [0,n]x[0,n]
}

func newHeightmap(size int) *Heightmap {
	n := float64(size)
	bound := geo.NewBoundFromPoints(geo.NewPoint(0, 0), geo.NewPoint(n, n))
	return &Heightmap{
		size:    size,
		surface: geo.NewSurface(bound, size+1, size+1),
	}
}

// Size is n, the power of two the map was built from.
func (h *Heightmap) Size() int { return h.size }

// Dims returns the number of columns and rows, both n+1.
func (h *Heightmap) Dims() (w, ht int) { return h.size + 1, h.size + 1 }

// At returns the elevation of cell (x, y). It panics outside the grid,
// like a slice index.
func (h *Heightmap) At(x, y int) float64 { return h.surface.Grid[x][y] }

// Contains reports whether (x, y) indexes a cell.
func (h *Heightmap) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x <= h.size && y <= h.size
}

// ElevationAt samples the surface at a fractional position with bilinear
// interpolation. Positions outside the grid read as 0.
func (h *Heightmap) ElevationAt(x, y float64) float64 {
	return h.surface.ValueAt(geo.NewPoint(x, y))
}

// Corners returns the seeds at (0,0), (n,0), (0,n), (n,n).
func (h *Heightmap) Corners() [4]float64 {
	g, n := h.surface.Grid, h.size
	return [4]float64{g[0][0], g[n][0], g[0][n], g[n][n]}
}

// Values returns a row-major copy: index y*(n+1)+x.
func (h *Heightmap) Values() []float64 {
	w := h.size + 1
	out := make([]float64, w*w)
	for x := 0; x < w; x++ {
		col := h.surface.Grid[x]
		for y := 0; y < w; y++ {
			out[y*w+x] = col[y]
		}
	}
	return out
}

// Extent returns the lowest and highest elevation in the map.
func (h *Heightmap) Extent() (lo, hi float64) {
	g := h.surface.Grid
	lo, hi = g[0][0], g[0][0]
	for _, col := range g {
		for _, v := range col {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// Points flattens the map into one (x, y, z) point per cell, column by
// column, so a synthesized surface can be sampled like a point cloud.
func (h *Heightmap) Points() [][3]float64 {
	w := h.size + 1
	pts := make([][3]float64, 0, w*w)
	for x := 0; x < w; x++ {
		for y := 0; y < w; y++ {
			pts = append(pts, [3]float64{float64(x), float64(y), h.surface.Grid[x][y]})
		}
	}
	return pts
}
