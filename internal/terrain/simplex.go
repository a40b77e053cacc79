package terrain

import (
	"github.com/ojrac/opensimplex-go"

	"terrascope/internal/errs"
)

// SimplexOptions configures the noise generator.
type SimplexOptions struct {
	Size      int     // power of two, same grid shape as Synthesize
	Seed      int64   // octave i is seeded with Seed+i
	Octaves   int     // default 5
	Feature   float64 // cells per period of the first octave, default Size/2
	Amplitude float64 // default DefaultBaseRange
}

// Simplex fills a heightmap with a sum of opensimplex octaves. Each octave
// halves the feature size and the amplitude of the one before it.
func Simplex(opts SimplexOptions) (*Heightmap, error) {
	const op = "simplex"
	if !isPowerOfTwo(opts.Size) {
		return nil, errs.Invalid(op, "size %d is not a power of two", opts.Size)
	}
	if opts.Octaves < 0 || opts.Feature < 0 || opts.Amplitude < 0 {
		return nil, errs.Invalid(op, "negative octaves, feature or amplitude")
	}
	if opts.Octaves == 0 {
		opts.Octaves = 5
	}
	if opts.Feature == 0 {
		opts.Feature = float64(opts.Size) / 2
	}
	if opts.Amplitude == 0 {
		opts.Amplitude = DefaultBaseRange
	}

	type octave struct {
		noise     opensimplex.Noise
		freq, amp float64
	}
	octaves := make([]octave, opts.Octaves)
	freq, amp := 1/opts.Feature, opts.Amplitude/2
	for i := range octaves {
		octaves[i] = octave{noise: opensimplex.New(opts.Seed + int64(i)), freq: freq, amp: amp}
		freq *= 2
		amp /= 2
	}

	hm := newHeightmap(opts.Size)
	for x, col := range hm.surface.Grid {
		for y := range col {
			var z float64
			for _, o := range octaves {
				// Eval2 is in [-1, 1]; shift each octave into [0, amp].
				z += o.amp * (o.noise.Eval2(float64(x)*o.freq, float64(y)*o.freq) + 1) / 2
			}
			col[y] = z
		}
	}
	return hm, nil
}
