package terrain

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrascope/internal/errs"
)

func TestSynthesizeRejectsBadParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct {
		name string
		opts Options
	}{
		{"zero size", Options{Size: 0, Roughness: 0.5}},
		{"negative size", Options{Size: -4, Roughness: 0.5}},
		{"not a power of two", Options{Size: 6, Roughness: 0.5}},
		{"negative roughness", Options{Size: 8, Roughness: -0.1}},
		{"nan roughness", Options{Size: 8, Roughness: math.NaN()}},
		{"infinite roughness", Options{Size: 8, Roughness: math.Inf(1)}},
		{"bad edge mode", Options{Size: 8, Roughness: 0.5, Edges: EdgeMode(7)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hm, err := Synthesize(tc.opts, rng)
			assert.Nil(t, hm)
			assert.True(t, errors.Is(err, errs.ErrInvalidParameter), "got %v", err)
		})
	}

	_, err := Synthesize(Options{Size: 8, Roughness: 0.5}, nil)
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
}

func TestSynthesizeKeepsCorners(t *testing.T) {
	for _, size := range []int{1, 2, 4, 16, 64} {
		for _, edges := range []EdgeMode{EdgeWrap, EdgeClamp} {
			seeds := [4]float64{12, 87, 45, 3}
			hm, err := Synthesize(Options{Size: size, Roughness: 0.7, Corners: &seeds, Edges: edges}, rand.New(rand.NewSource(42)))
			require.NoError(t, err)
			assert.Equal(t, seeds, hm.Corners(), "size %d %v", size, edges)
			w, h := hm.Dims()
			assert.Equal(t, size+1, w)
			assert.Equal(t, size+1, h)
		}
	}
}

func TestSynthesizeDrawsCornersFromSource(t *testing.T) {
	hm, err := Synthesize(Options{Size: 8, Roughness: 0.5}, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	var want [4]float64
	for i := range want {
		want[i] = rng.Float64() * DefaultBaseRange
	}
	assert.Equal(t, want, hm.Corners())
	for _, c := range want {
		assert.True(t, c >= 0 && c < DefaultBaseRange)
	}
}

func TestSynthesizeWrapsEdges(t *testing.T) {
	for _, size := range []int{2, 8, 32, 128} {
		hm, err := Synthesize(Options{Size: size, Roughness: 0.6}, rand.New(rand.NewSource(int64(size))))
		require.NoError(t, err)
		for i := 1; i < size; i++ {
			assert.Equal(t, hm.At(0, i), hm.At(size, i), "size %d row %d", size, i)
			assert.Equal(t, hm.At(i, 0), hm.At(i, size), "size %d col %d", size, i)
		}
	}
}

func TestSynthesizeWrapNeverReadsUnsetCells(t *testing.T) {
	// With equal corners and no displacement the torus is flat; a read of
	// an unset (zero) cell anywhere would pull some value below 50.
	seeds := [4]float64{50, 50, 50, 50}
	hm, err := Synthesize(Options{Size: 32, Roughness: 0, Corners: &seeds}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	for _, v := range hm.Values() {
		assert.Equal(t, 50.0, v)
	}
}

func TestSynthesizeSmoothIsBilinear(t *testing.T) {
	seeds := [4]float64{10, 90, 30, 70}
	size := 16
	hm, err := Synthesize(Options{Size: size, Roughness: 0, Corners: &seeds, Edges: EdgeClamp}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	n := float64(size)
	for x := 0; x <= size; x++ {
		for y := 0; y <= size; y++ {
			u, v := float64(x)/n, float64(y)/n
			want := seeds[0]*(1-u)*(1-v) + seeds[1]*u*(1-v) + seeds[2]*(1-u)*v + seeds[3]*u*v
			assert.InDelta(t, want, hm.At(x, y), 1e-9, "cell (%d,%d)", x, y)
		}
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	opts := Options{Size: 32, Roughness: 0.5}
	a, err := Synthesize(opts, rand.New(rand.NewSource(77)))
	require.NoError(t, err)
	b, err := Synthesize(opts, rand.New(rand.NewSource(77)))
	require.NoError(t, err)
	c, err := Synthesize(opts, rand.New(rand.NewSource(78)))
	require.NoError(t, err)

	assert.Equal(t, a.Values(), b.Values())
	assert.NotEqual(t, a.Values(), c.Values())
}

func TestSynthesizeRoughnessScalesDisplacement(t *testing.T) {
	// A single round displaces every cell by a draw times roughness, so
	// the same draws at a different roughness scale the offsets linearly.
	seeds := [4]float64{50, 50, 50, 50}
	unit, err := Synthesize(Options{Size: 2, Roughness: 1, Corners: &seeds}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	for _, r := range []float64{0.25, 0.5, 2} {
		hm, err := Synthesize(Options{Size: 2, Roughness: r, Corners: &seeds}, rand.New(rand.NewSource(11)))
		require.NoError(t, err)
		for x := 0; x <= 2; x++ {
			for y := 0; y <= 2; y++ {
				assert.InDelta(t, r*(unit.At(x, y)-50), hm.At(x, y)-50, 1e-9, "r=%v (%d,%d)", r, x, y)
			}
		}
	}
}

func TestValuesIsRowMajor(t *testing.T) {
	hm, err := Synthesize(Options{Size: 4, Roughness: 0.5}, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	vals := hm.Values()
	require.Len(t, vals, 25)
	for y := 0; y <= 4; y++ {
		for x := 0; x <= 4; x++ {
			assert.Equal(t, hm.At(x, y), vals[y*5+x])
		}
	}
	assert.Len(t, hm.Points(), 25)
}

func TestParseEdgeMode(t *testing.T) {
	m, err := ParseEdgeMode("clamp")
	require.NoError(t, err)
	assert.Equal(t, EdgeClamp, m)
	assert.Equal(t, "clamp", m.String())

	m, err = ParseEdgeMode("")
	require.NoError(t, err)
	assert.Equal(t, EdgeWrap, m)

	_, err = ParseEdgeMode("mirror")
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
}

func TestSimplex(t *testing.T) {
	a, err := Simplex(SimplexOptions{Size: 32, Seed: 4})
	require.NoError(t, err)
	b, err := Simplex(SimplexOptions{Size: 32, Seed: 4})
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values())

	lo, hi := a.Extent()
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, DefaultBaseRange)
	assert.Less(t, lo, hi)

	_, err = Simplex(SimplexOptions{Size: 30})
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
}
