// Package band classifies elevations into ten ordered bands and colours
// them for display.
package band

import (
	"fmt"
	"math"

	hsluv "github.com/hsluv/hsluv-go"
)

// Band is an elevation class, 0 (lowest) through Count-1.
type Band int

// Count is the number of bands.
const Count = 10

var thresholds = [Count - 1]float64{10, 20, 30, 40, 50, 60, 70, 80, 90}

// Classify maps an elevation to its band: below 10 is band 0, 90 and above
// is band 9. NaN falls in band 0.
func Classify(elevation float64) Band {
	for i, t := range thresholds {
		if !(elevation >= t) {
			return Band(i)
		}
	}
	return Band(Count - 1)
}

// Lower is the inclusive lower threshold of b, -Inf for band 0.
func (b Band) Lower() float64 {
	if b <= 0 {
		return math.Inf(-1)
	}
	return thresholds[min(int(b), Count-1)-1]
}

func (b Band) String() string {
	switch {
	case b <= 0:
		return fmt.Sprintf("<%g", thresholds[0])
	case int(b) >= Count-1:
		return fmt.Sprintf(">=%g", thresholds[Count-2])
	}
	return fmt.Sprintf("%g-%g", thresholds[b-1], thresholds[b])
}

// Normalize maps z into [0, 1] over [lo, hi]; a flat range maps to 0.
func Normalize(z, lo, hi float64) float64 {
	if !(hi > lo) {
		return 0
	}
	t := (z - lo) / (hi - lo)
	return math.Max(0, math.Min(1, t))
}

// Ramp colours a normalised elevation from blue (0) through green to
// red (1) as a hex string.
func Ramp(t float64) string {
	t = math.Max(0, math.Min(1, t))
	if math.IsNaN(t) {
		t = 0
	}
	r, g, b := hsluv.HuslToRGB(260-250*t, 90, 55)
	return hex(r, g, b)
}

// Color is the ramp colour at the middle of band b.
func Color(b Band) string {
	return Ramp((float64(b) + 0.5) / Count)
}

// Classes classifies each value.
func Classes(values []float64) []Band {
	out := make([]Band, len(values))
	for i, v := range values {
		out[i] = Classify(v)
	}
	return out
}

func hex(r, g, b float64) string {
	c := func(v float64) int { return int(math.Round(math.Max(0, math.Min(1, v)) * 0xff)) }
	return fmt.Sprintf("#%02X%02X%02X", c(r), c(g), c(b))
}
