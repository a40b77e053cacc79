package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"terrascope/internal/band"
	"terrascope/internal/geom"
	"terrascope/internal/terrain"
)

// gridScale is how many heightmap cells share one display cell so the
// whole map fits in w x h terminal cells at two columns per display cell.
func (m Model) gridScale(w, h int) int {
	if m.hm == nil {
		return 1
	}
	dim, _ := m.hm.Dims()
	s := 1
	for (dim+s-1)/s > max(1, w/2) || (dim+s-1)/s > max(1, h) {
		s++
	}
	return s
}

// gridCellAt maps a terminal cell inside the map to a heightmap cell.
func (m Model) gridCellAt(cx, cy, w, h int) (terrain.Coord, bool) {
	if m.hm == nil {
		return terrain.Coord{}, false
	}
	s := m.gridScale(w, h)
	c := terrain.Coord{X: cx / 2 * s, Y: cy * s}
	return c, m.hm.Contains(c.X, c.Y)
}

func (m Model) renderGrid(w, h int) string {
	if m.hm == nil {
		return ""
	}
	s := m.gridScale(w, h)
	dim, _ := m.hm.Dims()
	cells := (dim + s - 1) / s

	key := func(x, y int) int { return (y/s)*cells + x/s }
	selected := map[int]bool{}
	for _, c := range m.selection {
		selected[key(c.X, c.Y)] = true
	}
	onPath := map[int]bool{}
	for _, c := range m.path {
		onPath[key(c.X, c.Y)] = true
	}
	onRoute := map[int]bool{}
	if m.routeRes != nil {
		for _, p := range m.routeRes.Path {
			x, y := int(math.Round(p[0])), int(math.Round(p[1]))
			if m.hm.Contains(x, y) {
				onRoute[key(x, y)] = true
			}
		}
	}
	cursor := key(m.cursor.X, m.cursor.Y)

	lines := make([]string, 0, cells)
	for dy := 0; dy < cells && dy < h; dy++ {
		var b strings.Builder
		for dx := 0; dx < cells && dx*2+1 < w; dx++ {
			x, y := min(dx*s, dim-1), min(dy*s, dim-1)
			st := bandStyles[band.Classify(m.hm.At(x, y))]
			k := dy*cells + dx
			glyph := "  "
			switch {
			case k == cursor:
				glyph = "[]"
			case selected[k]:
				glyph = "◆◆"
			case onRoute[k]:
				glyph = "••"
			case onPath[k]:
				glyph = "··"
			}
			b.WriteString(st.Render(glyph))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// viewBox is the extent the cloud is projected from; a dataset with no
// area is padded so it still has one.
func (m Model) viewBox() geom.BBox {
	b := m.data.BBox
	if !b.Valid() {
		b = b.Pad(0.5)
	}
	return b
}

// cellToWorld converts a map cell coordinate back to x/y using the view box, zoom, and pan.
func (m Model) cellToWorld(cx, cy, w, h int) (float64, float64, bool) {
	if m.data.Empty() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	b := m.viewBox()
	// centre of the cell on the microgrid
	zx := float64((cx-m.offsetX)*2) / float64(w*2-1)
	zy := 1.0 - float64((cy-m.offsetY)*4+2)/float64(h*4-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return b.MinX + nx*b.Width(), b.MinY + ny*b.Height(), true
}

// screenXYMicro maps x/y into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int) {
	b := m.viewBox()
	nx := (x - b.MinX) / b.Width()
	ny := (y - b.MinY) / b.Height()
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy
}

func (m Model) renderCloud(w, h int) string {
	if m.data.Empty() {
		return dimStyle.Render("no point cloud loaded: Tab to browse, p to paste, c to convert the heightmap")
	}
	br := newBrailleBuf(w, h)
	over := newBrailleBuf(w, h)
	route := newBrailleBuf(w, h)

	// Tallest point per cell picks the cell's colour.
	top := make([][]float64, h)
	for y := range top {
		top[y] = make([]float64, w)
		for x := range top[y] {
			top[y][x] = math.Inf(-1)
		}
	}
	for _, p := range m.data.Points {
		mx, my := m.screenXYMicro(p[0], p[1], w, h)
		br.setPixel(mx, my)
		cx, cy := mx/2, my/4
		if mx >= 0 && my >= 0 && cx < w && cy < h {
			top[cy][cx] = math.Max(top[cy][cx], p[2])
		}
	}
	polyline := func(b *brailleBuf, pts [][3]float64) {
		for i := 1; i < len(pts); i++ {
			x0, y0 := m.screenXYMicro(pts[i-1][0], pts[i-1][1], w, h)
			x1, y1 := m.screenXYMicro(pts[i][0], pts[i][1], w, h)
			b.drawLineMicro(x0, y0, x1, y1)
		}
	}
	for _, ls := range m.data.Lines {
		polyline(br, ls)
	}
	if len(m.anchors) == 2 {
		polyline(over, [][3]float64{m.data.Points[m.anchors[0]], m.data.Points[m.anchors[1]]})
	}
	if m.routeRes != nil {
		polyline(route, m.routeRes.Path)
	}

	marks := map[[2]int]bool{}
	for _, i := range m.anchors {
		mx, my := m.screenXYMicro(m.data.Points[i][0], m.data.Points[i][1], w, h)
		marks[[2]int{mx / 2, my / 4}] = true
	}

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			switch {
			case m.hovering && x == m.hoverMicX/2 && y == m.hoverMicY/4:
				b.WriteString(markStyle.Render("◯"))
			case marks[[2]int{x, y}]:
				b.WriteString(markStyle.Render("◆"))
			case route.set(x, y):
				b.WriteString(routeStyle.Render(string(route.glyph(x, y))))
			case over.set(x, y):
				b.WriteString(titleStyle.Render(string(over.glyph(x, y))))
			case br.set(x, y):
				z := top[y][x]
				if math.IsInf(z, -1) {
					z = m.data.ZMin
				}
				c := band.Ramp(band.Normalize(z, m.data.ZMin, m.data.ZMax))
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(br.glyph(x, y))))
			default:
				b.WriteByte(' ')
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// nearestToCell finds the cloud point nearest to the world position under
// a map cell.
func (m Model) nearestToCell(cx, cy, w, h int) (int, bool) {
	if m.finder == nil {
		return -1, false
	}
	x, y, ok := m.cellToWorld(cx, cy, w, h)
	if !ok {
		return -1, false
	}
	return m.finder.Nearest(x, y), true
}
