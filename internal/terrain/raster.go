package terrain

import (
	"math"

	"terrascope/internal/errs"
)

// Coord is an integer grid position.
type Coord struct {
	X, Y int
}

// GridCell is a visited cell annotated with its elevation.
type GridCell struct {
	X, Y      int
	Elevation float64
}

// Path is an 8-connected run of cells from a start cell to an end cell,
// both inclusive.
type Path []GridCell

// Grid is anything indexable by cell; *Heightmap is one.
type Grid interface {
	Dims() (w, h int)
	At(x, y int) float64
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Line walks from start to end with Bresenham's error accumulator and
// returns every cell on the way, max(|dx|,|dy|)+1 of them.
func Line(start, end Coord) []Coord {
	x0, y0 := start.X, start.Y
	dx := abs(end.X - x0)
	sx := -1
	if x0 < end.X {
		sx = 1
	}
	dy := -abs(end.Y - y0)
	sy := -1
	if y0 < end.Y {
		sy = 1
	}
	out := make([]Coord, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		out = append(out, Coord{x0, y0})
		if x0 == end.X && y0 == end.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return out
}

// Rasterize returns the line from start to end with each cell's elevation
// looked up in g.
func Rasterize(start, end Coord, g Grid) (Path, error) {
	const op = "rasterize"
	w, h := g.Dims()
	for _, c := range [2]Coord{start, end} {
		if c.X < 0 || c.Y < 0 || c.X >= w || c.Y >= h {
			return nil, errs.Bounds(op, "(%d,%d) outside %dx%d grid", c.X, c.Y, w, h)
		}
	}
	line := Line(start, end)
	path := make(Path, len(line))
	for i, c := range line {
		path[i] = GridCell{X: c.X, Y: c.Y, Elevation: g.At(c.X, c.Y)}
	}
	return path, nil
}

// Elevations returns the elevation of every cell in order.
func (p Path) Elevations() []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = c.Elevation
	}
	return out
}

// Distances returns the running horizontal distance, in cells, from the
// first cell. Diagonal steps count sqrt(2).
func (p Path) Distances() []float64 {
	out := make([]float64, len(p))
	for i := 1; i < len(p); i++ {
		step := math.Hypot(float64(p[i].X-p[i-1].X), float64(p[i].Y-p[i-1].Y))
		out[i] = out[i-1] + step
	}
	return out
}

// Extent returns the lowest and highest elevation on the path.
func (p Path) Extent() (lo, hi float64) {
	if len(p) == 0 {
		return 0, 0
	}
	lo, hi = p[0].Elevation, p[0].Elevation
	for _, c := range p[1:] {
		lo = math.Min(lo, c.Elevation)
		hi = math.Max(hi, c.Elevation)
	}
	return lo, hi
}
