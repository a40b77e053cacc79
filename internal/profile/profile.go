// Package profile extracts elevation cross-sections from point clouds.
//
// A profile walks a fixed number of steps along the segment between two
// anchors. At each step it takes the elevation of the cloud point nearest
// to the step in the horizontal plane. Nearest-point search is pluggable;
// every Strategy returns the same point, the lowest-indexed one on exact
// distance ties, so profiles never depend on the strategy used.
package profile

import (
	"math"
	"sync"

	"github.com/paulmach/go.geo"
	"github.com/ungerik/go3d/float64/vec3"

	"terrascope/internal/errs"
)

// DefaultSteps is the number of steps a profile takes by default.
const DefaultSteps = 100

// Cloud is an unordered set of surface points. Its enumeration order is
// what breaks nearest-point ties.
type Cloud []vec3.T

// FromPoints copies plain coordinate triples into a Cloud.
func FromPoints(pts [][3]float64) Cloud {
	c := make(Cloud, len(pts))
	for i, p := range pts {
		c[i] = vec3.T(p)
	}
	return c
}

// Bound returns the horizontal extent of the cloud, nil when empty.
func (c Cloud) Bound() *geo.Bound {
	minX, minY, maxX, maxY, ok := c.extent()
	if !ok {
		return nil
	}
	return geo.NewBoundFromPoints(geo.NewPoint(minX, minY), geo.NewPoint(maxX, maxY))
}

// extent scans finite points only.
func (c Cloud) extent() (minX, minY, maxX, maxY float64, ok bool) {
	for _, p := range c {
		if !finite(p[0]) || !finite(p[1]) {
			continue
		}
		if !ok {
			minX, maxX, minY, maxY, ok = p[0], p[0], p[1], p[1], true
			continue
		}
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	return minX, minY, maxX, maxY, ok
}

// ZRange returns the lowest and highest z in the cloud.
func (c Cloud) ZRange() (lo, hi float64) {
	if len(c) == 0 {
		return 0, 0
	}
	lo, hi = c[0][2], c[0][2]
	for _, p := range c[1:] {
		lo, hi = math.Min(lo, p[2]), math.Max(hi, p[2])
	}
	return lo, hi
}

// Profile is a distance/elevation series from the start anchor to the end
// anchor inclusive.
type Profile struct {
	Distances    []float64
	Elevations   []float64
	Coordinates  [][3]float64 // chosen cloud point per sample
	Indices      []int        // cloud index per sample
	MinElevation float64
	MaxElevation float64
	Length       float64 // 3D length of the sampled segment
}

// Len is the number of samples, steps+1.
func (p Profile) Len() int { return len(p.Elevations) }

// Sampler samples profiles with a chosen strategy. The zero value scans
// the whole cloud for every step on the calling goroutine.
type Sampler struct {
	Strategy Strategy
	Workers  int // steps are split across this many goroutines when > 1
}

// Sample walks steps+1 positions from start to end with the linear scan.
func Sample(cloud Cloud, start, end vec3.T, steps int) (Profile, error) {
	return Sampler{}.Sample(cloud, start, end, steps)
}

// Sample walks steps+1 positions from start to end and records, for each,
// the z of the cloud point nearest in (x, y) and its distance t*|end-start|.
func (s Sampler) Sample(cloud Cloud, start, end vec3.T, steps int) (Profile, error) {
	const op = "sample"
	if len(cloud) == 0 {
		return Profile{}, errs.Empty(op, "point cloud has no points")
	}
	if steps < 1 {
		return Profile{}, errs.Invalid(op, "steps %d must be positive", steps)
	}
	for _, v := range [...]float64{start[0], start[1], start[2], end[0], end[1], end[2]} {
		if !finite(v) {
			return Profile{}, errs.Invalid(op, "anchors must be finite")
		}
	}

	strategy := s.Strategy
	if strategy == nil {
		strategy = Linear
	}
	finder := strategy(cloud)

	n := steps + 1
	p := Profile{
		Distances:   make([]float64, n),
		Elevations:  make([]float64, n),
		Coordinates: make([][3]float64, n),
		Indices:     make([]int, n),
		Length:      vec3.Distance(&start, &end),
	}
	at := func(i int) {
		t := float64(i) / float64(steps)
		x := start[0] + t*(end[0]-start[0])
		y := start[1] + t*(end[1]-start[1])
		j := finder.Nearest(x, y)
		p.Distances[i] = t * p.Length
		p.Elevations[i] = cloud[j][2]
		p.Coordinates[i] = [3]float64(cloud[j])
		p.Indices[i] = j
	}

	if s.Workers > 1 {
		indexes := make(chan int, n)
		for i := 0; i < n; i++ {
			indexes <- i
		}
		close(indexes)

		var wait sync.WaitGroup
		wait.Add(s.Workers)
		for w := 0; w < s.Workers; w++ {
			go func() {
				defer wait.Done()
				for i := range indexes {
					at(i)
				}
			}()
		}
		wait.Wait()
	} else {
		for i := 0; i < n; i++ {
			at(i)
		}
	}

	p.MinElevation, p.MaxElevation = p.Elevations[0], p.Elevations[0]
	for _, z := range p.Elevations[1:] {
		if z < p.MinElevation {
			p.MinElevation = z
		}
		if z > p.MaxElevation {
			p.MaxElevation = z
		}
	}
	return p, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
