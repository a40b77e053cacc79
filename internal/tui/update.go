package tui

import (
	"fmt"
	"math"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"terrascope/internal/geom"
	"terrascope/internal/terrain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.mapW, m.mapH = lo.mapW, lo.mapH
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		}
	case routeMsg:
		m.handleRoute(msg)
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showSamples {
			switch msg.String() {
			case "a", "esc":
				m.showSamples = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		m.inspectPopup = ""
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "m":
			if m.mode == gridMode && m.data.Empty() {
				m.status = "no point cloud loaded"
				break
			}
			m.toggleMode()
		case "a":
			m.showSamples = true
			m.refreshSamples()
		case "i":
			if s, ok := m.inspect(); ok {
				m.inspectPopup = s
				m.status = "inspect popup"
			} else {
				m.status = "nothing to inspect"
			}
		case "o":
			cmd := m.requestRoute()
			return m, cmd
		case "n":
			m.cfg.Algorithm = m.cfg.Algorithm.Next()
			m.status = fmt.Sprintf("route algorithm: %s", m.cfg.Algorithm)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
				return m, nil
			}
			if m.mode == gridMode {
				m.selectCell(m.cursor)
			}
		default:
			if m.mode == gridMode {
				m.updateGridKey(msg.String())
			} else {
				m.updateCloudKey(msg.String())
			}
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) toggleMode() {
	if m.mode == gridMode {
		m.mode = cloudMode
		m.series = nil
		if m.prof != nil {
			m.series = profileSeries(*m.prof)
		}
		m.status = "cloud view"
	} else {
		m.mode = gridMode
		m.series = nil
		if len(m.path) > 0 {
			m.series = gridSeries(m.path)
		}
		m.status = "grid view"
	}
	m.clearRoute()
}

func (m *Model) updateGridKey(key string) {
	if m.hm == nil {
		return
	}
	n := m.hm.Size()
	switch key {
	case "up":
		m.cursor.Y = max(0, m.cursor.Y-1)
	case "down":
		m.cursor.Y = min(n, m.cursor.Y+1)
	case "left":
		m.cursor.X = max(0, m.cursor.X-1)
	case "right":
		m.cursor.X = min(n, m.cursor.X+1)
	case " ":
		m.selectCell(m.cursor)
	case "esc":
		m.selection, m.path, m.series = nil, nil, nil
		m.clearRoute()
		m.status = "selection cleared"
	case "r":
		m.cfg.Seed++
		m.regenerate()
	case "g":
		if m.cfg.Generator == "simplex" {
			m.cfg.Generator = "diamond"
		} else {
			m.cfg.Generator = "simplex"
		}
		m.regenerate()
	case "e":
		if m.cfg.Edges == terrain.EdgeWrap {
			m.cfg.Edges = terrain.EdgeClamp
		} else {
			m.cfg.Edges = terrain.EdgeWrap
		}
		m.regenerate()
	case "+", "=":
		m.cfg.Roughness = math.Round((m.cfg.Roughness+0.1)*10) / 10
		m.regenerate()
	case "-", "_":
		m.cfg.Roughness = math.Max(0, math.Round((m.cfg.Roughness-0.1)*10)/10)
		m.regenerate()
	case "c":
		m.convertHeightmap()
	}
}

func (m *Model) updateCloudKey(key string) {
	switch key {
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "0":
		m.zoom, m.offsetX, m.offsetY = 1.0, 0, 0
	case "up":
		m.offsetY += 1
	case "down":
		m.offsetY -= 1
	case "left":
		m.offsetX += 2
	case "right":
		m.offsetX -= 2
	case "esc":
		m.anchors, m.prof, m.series = nil, nil, nil
		m.clearRoute()
		m.status = "anchors cleared"
	}
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	lo := m.layout()
	m.mapW, m.mapH = lo.mapW, lo.mapH
	cx, cy, ok := lo.inMap(msg.X, msg.Y)
	if !ok || m.pasteMode || m.showSamples {
		m.hovering = false
		return
	}
	click := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.mode == gridMode {
		c, ok := m.gridCellAt(cx, cy, lo.mapW, lo.mapH)
		if !ok {
			return
		}
		if click {
			m.cursor = c
			m.selectCell(c)
		}
		return
	}

	i, ok := m.nearestToCell(cx, cy, lo.mapW, lo.mapH)
	if !ok {
		m.hovering = false
		return
	}
	p := m.cloud[i]
	m.hovering = true
	m.hoverIdx = i
	m.hoverMicX, m.hoverMicY = m.screenXYMicro(p[0], p[1], lo.mapW, lo.mapH)
	if click {
		m.pickAnchor(i)
	}
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.setCloud(d, "")
		m.status = fmt.Sprintf("loaded WKT  pts=%d lines=%d  z=[%.2f, %.2f]", len(d.Points), len(d.Lines), d.ZMin, d.ZMax)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}
