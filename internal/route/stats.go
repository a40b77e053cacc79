package route

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Summarize computes length and slope statistics for a path. Segment
// slopes are |dz| over horizontal distance between consecutive points;
// local slopes split each segment into unit-length horizontal steps.
// Vertical segments add no slope. Path is left nil.
func Summarize(path [][3]float64) Result {
	var res Result
	if len(path) < 2 {
		return res
	}
	var lengths, slopes, local []float64
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		dx, dy, dz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
		lengths = append(lengths, math.Sqrt(dx*dx+dy*dy+dz*dz))
		h := math.Hypot(dx, dy)
		if h == 0 {
			continue
		}
		slope := math.Abs(dz) / h
		slopes = append(slopes, slope)

		steps := int(math.Ceil(h))
		if steps <= 1 {
			local = append(local, slope)
			continue
		}
		for j := 0; j < steps; j++ {
			t0, t1 := float64(j)/float64(steps), float64(j+1)/float64(steps)
			sh := math.Hypot(dx*(t1-t0), dy*(t1-t0))
			if sh > 0 {
				local = append(local, math.Abs(dz*(t1-t0))/sh)
			}
		}
	}
	res.Length = floats.Sum(lengths)
	res.AverageSlope, res.MinSlope, res.MaxSlope = reduce(slopes)
	res.LocalAverageSlope, res.LocalMinSlope, res.LocalMaxSlope = reduce(local)
	return res
}

func reduce(v []float64) (avg, lo, hi float64) {
	if len(v) == 0 {
		return 0, 0, 0
	}
	return floats.Sum(v) / float64(len(v)), floats.Min(v), floats.Max(v)
}
