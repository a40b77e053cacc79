package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"terrascope/internal/band"
	"terrascope/internal/profile"
	"terrascope/internal/terrain"
)

// series is a distance/elevation cross-section ready for display.
type series struct {
	title  string
	dist   []float64
	elev   []float64
	coords [][3]float64
	lo, hi float64
}

func gridSeries(p terrain.Path) *series {
	s := &series{
		title: fmt.Sprintf("grid profile (%d,%d) → (%d,%d)", p[0].X, p[0].Y, p[len(p)-1].X, p[len(p)-1].Y),
		dist:  p.Distances(),
		elev:  p.Elevations(),
	}
	for _, c := range p {
		s.coords = append(s.coords, [3]float64{float64(c.X), float64(c.Y), c.Elevation})
	}
	s.lo, s.hi = p.Extent()
	return s
}

func profileSeries(p profile.Profile) *series {
	first, last := p.Coordinates[0], p.Coordinates[len(p.Coordinates)-1]
	return &series{
		title: fmt.Sprintf("cross-section (%.2f, %.2f) → (%.2f, %.2f), %d steps",
			first[0], first[1], last[0], last[1], p.Len()-1),
		dist:   p.Distances,
		elev:   p.Elevations,
		coords: p.Coordinates,
		lo:     p.MinElevation,
		hi:     p.MaxElevation,
	}
}

// length is the horizontal extent of the series.
func (s *series) length() float64 {
	if len(s.dist) == 0 {
		return 0
	}
	return s.dist[len(s.dist)-1]
}

// render draws the series as a braille line chart, w by h cells, with the
// elevation range on the left. Each column is tinted by its band.
func (s *series) render(w, h int) string {
	labels := []string{fmt.Sprintf("%.1f", s.hi), fmt.Sprintf("%.1f", s.lo)}
	lw := max(len(labels[0]), len(labels[1])) + 1
	cw := w - lw
	if cw < 2 || h < 2 || len(s.elev) == 0 {
		return ""
	}
	br := newBrailleBuf(cw, h)
	xr := s.length()
	yr := s.hi - s.lo
	colZ := make([]float64, cw)
	for i := range colZ {
		colZ[i] = math.Inf(-1)
	}
	project := func(i int) (int, int) {
		nx := 0.0
		if xr > 0 {
			nx = s.dist[i] / xr
		} else if len(s.dist) > 1 {
			nx = float64(i) / float64(len(s.dist)-1)
		}
		ny := 0.5
		if yr > 0 {
			ny = (s.elev[i] - s.lo) / yr
		}
		return int(nx * float64(cw*2-1)), int((1 - ny) * float64(h*4-1))
	}
	px, py := project(0)
	prev := s.elev[0]
	for i := range s.elev {
		x, y := project(i)
		br.drawLineMicro(px, py, x, y)
		top := math.Max(prev, s.elev[i])
		for c := min(px, x) / 2; c <= max(px, x)/2; c++ {
			colZ[c] = math.Max(colZ[c], top)
		}
		px, py, prev = x, y, s.elev[i]
	}

	lines := br.toLines()
	out := make([]string, h)
	for y, line := range lines {
		label := ""
		switch y {
		case 0:
			label = labels[0]
		case h - 1:
			label = labels[1]
		}
		var b strings.Builder
		b.WriteString(dimStyle.Render(fmt.Sprintf("%*s ", lw-1, label)))
		for x, r := range []rune(line) {
			if r == ' ' {
				b.WriteRune(r)
				continue
			}
			z := colZ[x]
			if math.IsInf(z, -1) {
				z = s.lo
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(band.Color(band.Classify(z)))).Render(string(r)))
		}
		out[y] = b.String()
	}
	return strings.Join(out, "\n")
}
