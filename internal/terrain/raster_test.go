package terrain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrascope/internal/errs"
)

// plane is a grid whose elevation is 10*x + y.
type plane struct{ w, h int }

func (p plane) Dims() (int, int)    { return p.w, p.h }
func (p plane) At(x, y int) float64 { return float64(10*x + y) }

func TestRasterizeShallowLine(t *testing.T) {
	path, err := Rasterize(Coord{0, 0}, Coord{5, 3}, plane{8, 8})
	require.NoError(t, err)
	require.Len(t, path, 6)
	assert.Equal(t, GridCell{0, 0, 0}, path[0])
	assert.Equal(t, GridCell{5, 3, 53}, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.Equal(t, path[i-1].X+1, path[i].X, "x strictly increasing")
		assert.GreaterOrEqual(t, path[i].Y, path[i-1].Y, "y weakly increasing")
	}
	want := []Coord{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}}
	assert.Equal(t, want, Line(Coord{0, 0}, Coord{5, 3}))
}

func TestRasterizeSingleCell(t *testing.T) {
	path, err := Rasterize(Coord{3, 4}, Coord{3, 4}, plane{8, 8})
	require.NoError(t, err)
	assert.Equal(t, Path{{3, 4, 34}}, path)
	assert.Equal(t, []float64{0}, path.Distances())
}

func TestRasterizeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := plane{33, 33}
	for i := 0; i < 500; i++ {
		a := Coord{rng.Intn(33), rng.Intn(33)}
		b := Coord{rng.Intn(33), rng.Intn(33)}
		path, err := Rasterize(a, b, g)
		require.NoError(t, err)

		assert.Len(t, path, max(abs(b.X-a.X), abs(b.Y-a.Y))+1)
		assert.Equal(t, a, Coord{path[0].X, path[0].Y})
		assert.Equal(t, b, Coord{path[len(path)-1].X, path[len(path)-1].Y})

		seen := map[Coord]bool{}
		for j, c := range path {
			k := Coord{c.X, c.Y}
			assert.False(t, seen[k], "duplicate %v", k)
			seen[k] = true
			assert.Equal(t, g.At(c.X, c.Y), c.Elevation)
			if j > 0 {
				assert.LessOrEqual(t, abs(c.X-path[j-1].X), 1)
				assert.LessOrEqual(t, abs(c.Y-path[j-1].Y), 1)
			}
		}

		again, err := Rasterize(a, b, g)
		require.NoError(t, err)
		assert.Equal(t, path, again)
	}
}

func TestRasterizeOctants(t *testing.T) {
	for _, end := range []Coord{{9, 2}, {2, 9}, {-2, 9}, {-9, 2}, {-9, -2}, {-2, -9}, {2, -9}, {9, -2}} {
		start := Coord{10, 10}
		end = Coord{start.X + end.X, start.Y + end.Y}
		line := Line(start, end)
		assert.Len(t, line, 10, "to %v", end)
		assert.Equal(t, end, line[len(line)-1])
	}
}

func TestRasterizeOutOfBounds(t *testing.T) {
	g := plane{4, 4}
	for _, tc := range [][2]Coord{
		{{-1, 0}, {2, 2}},
		{{0, 0}, {4, 0}},
		{{0, 0}, {0, 4}},
		{{0, -3}, {1, 1}},
	} {
		path, err := Rasterize(tc[0], tc[1], g)
		assert.Nil(t, path)
		assert.True(t, errors.Is(err, errs.ErrOutOfBounds), "%v", tc)
	}
}

func TestPathSummaries(t *testing.T) {
	path, err := Rasterize(Coord{0, 0}, Coord{2, 2}, plane{3, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 11, 22}, path.Elevations())
	d := path.Distances()
	assert.InDelta(t, 2*1.4142135623730951, d[2], 1e-12)
	lo, hi := path.Extent()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 22.0, hi)
}

func TestSynthesizeThenRasterizeIsReproducible(t *testing.T) {
	run := func() []float64 {
		hm, err := Synthesize(Options{Size: 32, Roughness: 0.5}, rand.New(rand.NewSource(2024)))
		require.NoError(t, err)
		path, err := Rasterize(Coord{0, 0}, Coord{10, 10}, hm)
		require.NoError(t, err)
		require.Len(t, path, 11)
		return path.Elevations()
	}
	assert.Equal(t, run(), run())
}
