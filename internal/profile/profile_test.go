package profile

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"

	"terrascope/internal/errs"
)

var strategies = map[string]Strategy{
	"linear":       Linear,
	"bucket":       Bucketed(0),
	"bucket-fine":  Bucketed(0.25),
	"bucket-large": Bucketed(50),
	"rtree":        RTree,
}

func TestSampleSinglePoint(t *testing.T) {
	cloud := Cloud{{3, 4, 17.5}}
	for name, s := range strategies {
		for _, steps := range []int{1, 7, 100} {
			p, err := Sampler{Strategy: s}.Sample(cloud, vec3.T{-50, 20, 0}, vec3.T{90, -3, 12}, steps)
			require.NoError(t, err, name)
			require.Equal(t, steps+1, p.Len())
			for _, z := range p.Elevations {
				assert.Equal(t, 17.5, z, name)
			}
			assert.Equal(t, 17.5, p.MinElevation)
			assert.Equal(t, 17.5, p.MaxElevation)
		}
	}
}

func TestSampleDistances(t *testing.T) {
	cloud := Cloud{{0, 0, 1}, {10, 0, 2}}
	start, end := vec3.T{0, 0, 0}, vec3.T{3, 4, 12}
	p, err := Sample(cloud, start, end, 4)
	require.NoError(t, err)
	assert.Equal(t, 13.0, p.Length)
	require.Len(t, p.Distances, 5)
	for i, d := range p.Distances {
		assert.InDelta(t, 13*float64(i)/4, d, 1e-12)
	}
	assert.Equal(t, 0.0, p.Distances[0])
	assert.Equal(t, 13.0, p.Distances[4])
}

func TestSampleTieBreaksOnFirstPoint(t *testing.T) {
	start, end := vec3.T{0, 0, 0}, vec3.T{10, 0, 0}
	a, b := vec3.T{5, 1, 7}, vec3.T{5, -1, 3}

	for name, s := range strategies {
		first, err := Sampler{Strategy: s}.Sample(Cloud{a, b}, start, end, 10)
		require.NoError(t, err)
		assert.Equal(t, 7.0, first.Elevations[5], name)
		for run := 0; run < 5; run++ {
			again, err := Sampler{Strategy: s, Workers: run + 1}.Sample(Cloud{a, b}, start, end, 10)
			require.NoError(t, err)
			assert.Equal(t, first, again, name)
		}

		swapped, err := Sampler{Strategy: s}.Sample(Cloud{b, a}, start, end, 10)
		require.NoError(t, err)
		assert.Equal(t, 3.0, swapped.Elevations[5], name)
	}
}

func TestSampleDegenerateSegment(t *testing.T) {
	cloud := Cloud{{0, 0, 5}, {1, 1, 6}, {2, 2, 9}}
	p, err := Sample(cloud, vec3.T{1.1, 0.9, 3}, vec3.T{1.1, 0.9, 3}, 6)
	require.NoError(t, err)
	require.Equal(t, 7, p.Len())
	for i := range p.Elevations {
		assert.Equal(t, 0.0, p.Distances[i])
		assert.Equal(t, 6.0, p.Elevations[i])
		assert.Equal(t, 1, p.Indices[i])
		assert.Equal(t, [3]float64{1, 1, 6}, p.Coordinates[i])
	}
}

func TestSampleErrors(t *testing.T) {
	_, err := Sample(nil, vec3.T{}, vec3.T{1, 1, 1}, 10)
	assert.True(t, errors.Is(err, errs.ErrEmptyInput))

	cloud := Cloud{{0, 0, 0}}
	for _, steps := range []int{0, -3} {
		_, err = Sample(cloud, vec3.T{}, vec3.T{1, 1, 1}, steps)
		assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
	}
	_, err = Sample(cloud, vec3.T{math.NaN(), 0, 0}, vec3.T{1, 1, 1}, 10)
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
	_, err = Sample(cloud, vec3.T{}, vec3.T{1, math.Inf(-1), 1}, 10)
	assert.True(t, errors.Is(err, errs.ErrInvalidParameter))
}

func TestSampleExtremaMatchSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	cloud := randomCloud(rng, 400)
	p, err := Sample(cloud, vec3.T{-10, -10, 0}, vec3.T{110, 90, 0}, 50)
	require.NoError(t, err)

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, z := range p.Elevations {
		assert.GreaterOrEqual(t, z, p.MinElevation)
		assert.LessOrEqual(t, z, p.MaxElevation)
		lo, hi = math.Min(lo, z), math.Max(hi, z)
		assert.Equal(t, cloud[p.Indices[i]][2], z)
	}
	assert.Equal(t, lo, p.MinElevation)
	assert.Equal(t, hi, p.MaxElevation)
}

func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	clouds := map[string]Cloud{
		"random":  randomCloud(rng, 1000),
		"lattice": latticeCloud(12),
		"line":    {{0, 0, 1}, {1, 0, 2}, {2, 0, 3}, {3, 0, 4}},
		"stacked": {{5, 5, 1}, {5, 5, 2}, {5, 5, 3}},
	}
	segments := [][2]vec3.T{
		{{-5, -5, 0}, {105, 105, 0}},
		{{0, 0, 0}, {11, 0, 0}},
		{{0.5, 0.5, 0}, {10.5, 3.5, 0}},
		{{-300, 40, 0}, {400, -60, 0}},
		{{5, 5, 0}, {5, 5, 0}},
	}
	for cname, cloud := range clouds {
		for _, seg := range segments {
			want, err := Sample(cloud, seg[0], seg[1], 64)
			require.NoError(t, err)
			for sname, s := range strategies {
				for _, workers := range []int{0, 1, 4} {
					got, err := Sampler{Strategy: s, Workers: workers}.Sample(cloud, seg[0], seg[1], 64)
					require.NoError(t, err)
					assert.Equal(t, want.Indices, got.Indices, "%s/%s/%d %v", cname, sname, workers, seg)
					assert.Equal(t, want, got)
				}
			}
		}
	}
}

func TestFindersMatchLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cloud := append(latticeCloud(8), randomCloud(rng, 50)...)
	cloud = append(cloud, vec3.T{math.NaN(), 1, 1}, vec3.T{2, math.Inf(1), 1})
	base := Linear(cloud)
	for name, s := range strategies {
		f := s(cloud)
		for i := 0; i < 2000; i++ {
			x := rng.Float64()*140 - 20
			y := rng.Float64()*140 - 20
			if i%3 == 0 {
				x, y = math.Round(x*2)/2, math.Round(y*2)/2
			}
			assert.Equal(t, base.Nearest(x, y), f.Nearest(x, y), "%s at (%v,%v)", name, x, y)
		}
	}
}

func TestFineBucketsOnCollinearCloud(t *testing.T) {
	var cloud Cloud
	for i := 0; i < 200; i++ {
		cloud = append(cloud, vec3.T{3, float64(i) * 5, float64(i)})
	}
	base := Linear(cloud)
	f := Bucketed(1e-9)(cloud)
	rng := rand.New(rand.NewSource(9))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			x := (rng.Float64()*2 - 1) * 1e6
			y := (rng.Float64()*2 - 1) * 1e6
			assert.Equal(t, base.Nearest(x, y), f.Nearest(x, y), "at (%v,%v)", x, y)
		}
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("far queries on a fine bucket grid did not finish")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"", "linear", "bucket", "rtree"} {
		s, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.NotNil(t, s)
	}
	_, err := ParseStrategy("kd")
	assert.Error(t, err)
}

func TestCloudHelpers(t *testing.T) {
	c := FromPoints([][3]float64{{1, 2, 3}, {-4, 8, -1}, {6, -2, 10}})
	lo, hi := c.ZRange()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 10.0, hi)
	b := c.Bound()
	require.NotNil(t, b)
	assert.Equal(t, 10.0, b.Width())
	assert.Equal(t, 10.0, b.Height())
	assert.Nil(t, Cloud{}.Bound())
}

func randomCloud(rng *rand.Rand, n int) Cloud {
	c := make(Cloud, n)
	for i := range c {
		c[i] = vec3.T{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 50}
	}
	return c
}

// latticeCloud puts points on integer coordinates so half-integer queries
// hit exact ties.
func latticeCloud(n int) Cloud {
	var c Cloud
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			c = append(c, vec3.T{float64(x), float64(y), float64(x*n + y)})
		}
	}
	return c
}
