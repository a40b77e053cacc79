package terrain

import (
	"math"
	"math/rand"

	"terrascope/internal/errs"
)

// DefaultBaseRange bounds the randomly drawn corner seeds: [0, 100).
const DefaultBaseRange = 100.0

// EdgeMode selects how the square pass treats neighbours past the border.
type EdgeMode int

const (
	// EdgeWrap reads missing neighbours from the opposite side and
	// mirrors row/column 0 onto row/column n, so the map tiles.
	EdgeWrap EdgeMode = iota
	// EdgeClamp averages only the two neighbours along the border.
	EdgeClamp
)

func (e EdgeMode) String() string {
	switch e {
	case EdgeWrap:
		return "wrap"
	case EdgeClamp:
		return "clamp"
	}
	return "unknown"
}

// ParseEdgeMode accepts "wrap" or "clamp".
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "wrap", "":
		return EdgeWrap, nil
	case "clamp":
		return EdgeClamp, nil
	}
	return EdgeWrap, errs.Invalid("edges", "unknown edge mode %q", s)
}

// Options configures diamond-square synthesis.
type Options struct {
	Size      int     // power of two
	Roughness float64 // per-round amplitude factor, >= 0

	// Corners seeds (0,0), (n,0), (0,n), (n,n). Drawn from the random
	// source in [0, BaseRange) when nil.
	Corners   *[4]float64
	BaseRange float64
	Edges     EdgeMode
}

func (o Options) validate(op string) error {
	if !isPowerOfTwo(o.Size) {
		return errs.Invalid(op, "size %d is not a power of two", o.Size)
	}
	if math.IsNaN(o.Roughness) || math.IsInf(o.Roughness, 0) || o.Roughness < 0 {
		return errs.Invalid(op, "roughness %v must be finite and not negative", o.Roughness)
	}
	if o.BaseRange < 0 || math.IsNaN(o.BaseRange) || math.IsInf(o.BaseRange, 0) {
		return errs.Invalid(op, "base range %v", o.BaseRange)
	}
	if o.Edges != EdgeWrap && o.Edges != EdgeClamp {
		return errs.Invalid(op, "edge mode %d", int(o.Edges))
	}
	return nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Synthesize builds a heightmap with recursive midpoint displacement
// (diamond-square). All random draws come from rng, so a fixed seed gives
// a fixed map.
func Synthesize(opts Options, rng *rand.Rand) (*Heightmap, error) {
	const op = "synthesize"
	if err := opts.validate(op); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errs.Invalid(op, "nil random source")
	}
	base := opts.BaseRange
	if base == 0 {
		base = DefaultBaseRange
	}

	n := opts.Size
	hm := newHeightmap(n)
	g := hm.surface.Grid

	var c [4]float64
	if opts.Corners != nil {
		c = *opts.Corners
	} else {
		for i := range c {
			c[i] = rng.Float64() * base
		}
	}
	g[0][0], g[n][0], g[0][n], g[n][n] = c[0], c[1], c[2], c[3]

	s := synth{g: g, n: n, rng: rng, scale: opts.Roughness}
	for step := n; step > 1; step /= 2 {
		s.diamond(step)
		if opts.Edges == EdgeWrap {
			s.squareWrap(step)
		} else {
			s.squareClamp(step)
		}
		s.scale *= opts.Roughness
	}
	return hm, nil
}

// synth is the state of one synthesis call. The grid is owned by the
// heightmap under construction and never shared.
type synth struct {
	g     [][]float64
	n     int
	rng   *rand.Rand
	scale float64
}

func (s *synth) offset() float64 {
	return (s.rng.Float64()*2 - 1) * s.scale
}

func (s *synth) diamond(step int) {
	g, half := s.g, step/2
	for x := 0; x < s.n; x += step {
		for y := 0; y < s.n; y += step {
			avg := (g[x][y] + g[x+step][y] + g[x][y+step] + g[x+step][y+step]) / 4
			g[x+half][y+half] = avg + s.offset()
		}
	}
}

// squareWrap fills edge midpoints on a torus. Only indices that fall off
// the grid wrap; they land on lattice cells the diamond pass just wrote,
// never on a cell that is still unset.
func (s *synth) squareWrap(step int) {
	g, n, half := s.g, s.n, step/2
	wrap := func(i int) int {
		if i < 0 {
			return i + n
		}
		if i > n {
			return i - n
		}
		return i
	}
	for x := 0; x < n; x += half {
		for y := (x + half) % step; y < n; y += step {
			avg := (g[wrap(x-half)][y] + g[wrap(x+half)][y] + g[x][wrap(y-half)] + g[x][wrap(y+half)]) / 4
			g[x][y] = avg + s.offset()

			if x == 0 {
				g[n][y] = g[x][y]
			}
			if y == 0 {
				g[x][n] = g[x][y]
			}
		}
	}
}

func (s *synth) squareClamp(step int) {
	g, n, half := s.g, s.n, step/2
	for x := 0; x <= n; x += half {
		for y := (x + half) % step; y <= n; y += step {
			var avg float64
			switch {
			case x == 0 || x == n:
				avg = (g[x][y-half] + g[x][y+half]) / 2
			case y == 0 || y == n:
				avg = (g[x-half][y] + g[x+half][y]) / 2
			default:
				avg = (g[x-half][y] + g[x+half][y] + g[x][y-half] + g[x][y+half]) / 4
			}
			g[x][y] = avg + s.offset()
		}
	}
}
