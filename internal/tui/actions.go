package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ungerik/go3d/float64/vec3"

	"terrascope/internal/band"
	"terrascope/internal/geom"
	"terrascope/internal/profile"
	"terrascope/internal/route"
	"terrascope/internal/terrain"
)

// routeTimeout bounds one request to the routing service.
const routeTimeout = 2 * time.Minute

// routeMsg carries a routing answer back into Update.
// gen is the route generation the request was made in.
type routeMsg struct {
	gen int
	res route.Result
	err error
}

// clearRoute drops the route overlay and invalidates any request still
// running, so its reply cannot land on a different map or selection.
func (m *Model) clearRoute() {
	m.routeRes = nil
	m.routeGen++
}

// selectCell adds a heightmap cell to the selection. The second cell
// completes a pair and rasterizes the line between them; a third starts over.
func (m *Model) selectCell(c terrain.Coord) {
	m.clearRoute()
	if len(m.selection) >= 2 {
		m.selection, m.path = nil, nil
	}
	m.selection = append(m.selection, c)
	if len(m.selection) < 2 {
		m.status = fmt.Sprintf("start (%d,%d) z=%.2f: pick the end cell", c.X, c.Y, m.hm.At(c.X, c.Y))
		return
	}
	p, err := terrain.Rasterize(m.selection[0], m.selection[1], m.hm)
	if err != nil {
		m.status = "rasterize: " + err.Error()
		m.selection = nil
		return
	}
	m.path = p
	m.series = gridSeries(p)
	lo, hi := p.Extent()
	m.status = fmt.Sprintf("path: %d cells  length=%.2f  z=[%.2f, %.2f]", len(p), m.series.length(), lo, hi)
	if m.showSamples {
		m.refreshSamples()
	}
}

// pickAnchor adds a cloud point as a profile anchor; two anchors are
// sampled into a cross-section.
func (m *Model) pickAnchor(i int) {
	if i < 0 || i >= len(m.cloud) {
		return
	}
	m.clearRoute()
	if len(m.anchors) >= 2 {
		m.anchors, m.prof = nil, nil
	}
	m.anchors = append(m.anchors, i)
	p := m.cloud[i]
	if len(m.anchors) < 2 {
		m.status = fmt.Sprintf("anchor (%.3f, %.3f, %.2f): pick the second anchor", p[0], p[1], p[2])
		return
	}
	m.sampleAnchors()
}

func (m *Model) sampleAnchors() {
	start, end := m.cloud[m.anchors[0]], m.cloud[m.anchors[1]]
	s := profile.Sampler{Strategy: func(profile.Cloud) profile.Finder { return m.finder }, Workers: m.cfg.Workers}
	began := time.Now()
	p, err := s.Sample(m.cloud, start, end, m.cfg.Steps)
	if err != nil {
		m.status = "sample: " + err.Error()
		m.anchors = nil
		return
	}
	m.log.Debug("sampled cross-section", "steps", m.cfg.Steps, "strategy", m.cfg.Strategy,
		"workers", m.cfg.Workers, "took", time.Since(began))
	m.prof = &p
	m.series = profileSeries(p)
	m.status = fmt.Sprintf("cross-section: %d samples  length=%.2f  z=[%.2f, %.2f]",
		p.Len(), p.Length, p.MinElevation, p.MaxElevation)
	if m.showSamples {
		m.refreshSamples()
	}
}

// endpoints are the 3D points a route request runs between.
func (m Model) endpoints() (a, b [3]float64, ok bool) {
	switch m.mode {
	case gridMode:
		if len(m.selection) != 2 {
			return a, b, false
		}
		s, e := m.selection[0], m.selection[1]
		return [3]float64{float64(s.X), float64(s.Y), m.hm.At(s.X, s.Y)},
			[3]float64{float64(e.X), float64(e.Y), m.hm.At(e.X, e.Y)}, true
	case cloudMode:
		if len(m.anchors) != 2 {
			return a, b, false
		}
		return [3]float64(m.cloud[m.anchors[0]]), [3]float64(m.cloud[m.anchors[1]]), true
	}
	return a, b, false
}

// requestRoute asks the router for a path between the current endpoints.
func (m *Model) requestRoute() tea.Cmd {
	if m.cfg.Router == nil {
		m.status = "routing disabled: start with -router URL"
		return nil
	}
	if m.routing {
		m.status = "route request already running"
		return nil
	}
	a, b, ok := m.endpoints()
	if !ok {
		m.status = "route: select two points first"
		return nil
	}
	m.routing = true
	m.status = fmt.Sprintf("routing with %s...", m.cfg.Algorithm)
	router, gen := m.cfg.Router, m.routeGen
	req := route.Request{
		Point1:      a,
		Point2:      b,
		Algorithm:   m.cfg.Algorithm,
		Constraints: route.DefaultConstraints(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
		defer cancel()
		res, err := router.Route(ctx, req)
		return routeMsg{gen: gen, res: res, err: err}
	}
}

func (m *Model) handleRoute(msg routeMsg) {
	m.routing = false
	if msg.gen != m.routeGen {
		m.log.Debug("dropped stale route reply", "gen", msg.gen, "current", m.routeGen)
		m.status = "route discarded: selection changed"
		return
	}
	if msg.err != nil {
		if errors.Is(msg.err, route.ErrNoRoute) {
			m.status = "no route found"
		} else {
			m.status = "route error: " + msg.err.Error()
		}
		m.log.Warn("route", "err", msg.err)
		return
	}
	res := msg.res
	m.routeRes = &res
	m.status = fmt.Sprintf("route (%s): %d pts  length=%.2f  slope avg=%.3f max=%.3f  local max=%.3f",
		m.cfg.Algorithm, len(res.Path), res.Length, res.AverageSlope, res.MaxSlope, res.LocalMaxSlope)
}

// convertHeightmap turns the heightmap into a cloud with one point per cell.
func (m *Model) convertHeightmap() {
	if m.hm == nil {
		return
	}
	m.setCloud(geom.FromPoints(m.hm.Points()), "")
	m.status = fmt.Sprintf("heightmap as cloud: %d points", len(m.cloud))
}

// inspect describes the point under the cursor (grid) or nearest to the
// viewport centre (cloud).
func (m Model) inspect() (string, bool) {
	switch m.mode {
	case gridMode:
		if m.hm == nil {
			return "", false
		}
		z := m.hm.At(m.cursor.X, m.cursor.Y)
		lo, hi := m.hm.Extent()
		b := band.Classify(z)
		return strings.Join([]string{
			fmt.Sprintf("cell: (%d, %d)", m.cursor.X, m.cursor.Y),
			fmt.Sprintf("elevation: %.3f", z),
			fmt.Sprintf("band: %d (%s)", int(b), b),
			fmt.Sprintf("map: %s %dx%d", m.cfg.Generator, m.hm.Size()+1, m.hm.Size()+1),
			fmt.Sprintf("range: [%.2f, %.2f]", lo, hi),
		}, "\n"), true
	case cloudMode:
		i, ok := m.nearestToCell(m.mapW/2, m.mapH/2, m.mapW, m.mapH)
		if !ok {
			return "", false
		}
		p := m.cloud[i]
		name := filepath.Base(m.selPath)
		if m.selPath == "" {
			name = "<unsaved>"
		}
		b := band.Classify(p[2])
		return strings.Join([]string{
			fmt.Sprintf("name: %s", name),
			fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.data.BBox.MinX, m.data.BBox.MinY, m.data.BBox.MaxX, m.data.BBox.MaxY),
			fmt.Sprintf("counts: pts=%d lines=%d", len(m.data.Points), len(m.data.Lines)),
			fmt.Sprintf("z range: [%.2f, %.2f]", m.data.ZMin, m.data.ZMax),
			fmt.Sprintf("nearest #%d: (%.5f, %.5f, %.3f)", i, p[0], p[1], p[2]),
			fmt.Sprintf("band: %d (%s)", int(b), b),
			fmt.Sprintf("index: %s", m.cfg.Strategy),
		}, "\n"), true
	}
	return "", false
}

// anchorDistance is the 3D distance between the two anchors.
func (m Model) anchorDistance() float64 {
	if len(m.anchors) != 2 {
		return 0
	}
	a, b := m.cloud[m.anchors[0]], m.cloud[m.anchors[1]]
	return vec3.Distance(&a, &b)
}
