package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"terrascope/internal/band"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}

	// Header
	mode := "grid"
	if m.mode == cloudMode {
		mode = "cloud"
	}
	header := titleStyle.Render(" terrascope ─ terrain profiles ") + dimStyle.Render(" "+mode+" ")
	header = lipgloss.NewStyle().Width(lo.contentW).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// track map size for inspect (use full area; map canvas has no border)
	m.mapW, m.mapH = lo.mapW, lo.mapH
	var mapView string
	switch {
	case m.showSamples:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(max(3, min(lo.contentH-4, 20)))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.contentH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.contentH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.contentH).Render(m.ta.View())
	default:
		var canvas string
		if m.mode == gridMode {
			canvas = m.renderGrid(lo.mapW, lo.mapH)
		} else {
			canvas = m.renderCloud(lo.mapW, lo.mapH)
		}
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(canvas)
		if lo.chartH > 0 {
			chart := m.series.render(lo.mapW, lo.chartH-1)
			title := dimStyle.Render(m.series.title)
			mapView = lipgloss.JoinVertical(lipgloss.Left, mapView, title, chart)
		}
	}

	// Build inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showSamples {
		maxPopupW := max(20, min(48, lo.contentW/2))
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(lo.contentW, lo.contentH, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := dimStyle.Render(m.readout())
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	// Compose UI with popup overlay between header and body
	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// readout is the position shown at the bottom-right.
func (m Model) readout() string {
	switch {
	case m.mode == gridMode && m.hm != nil:
		z := m.hm.At(m.cursor.X, m.cursor.Y)
		return fmt.Sprintf("  (%d,%d) z=%.2f %s  ", m.cursor.X, m.cursor.Y, z, band.Classify(z))
	case m.mode == cloudMode && len(m.anchors) == 2:
		return fmt.Sprintf("  anchors %.2f apart  ", m.anchorDistance())
	case m.mode == cloudMode && m.hovering && m.hoverIdx >= 0:
		p := m.cloud[m.hoverIdx]
		return fmt.Sprintf("  x=%.5f y=%.5f z=%.2f  ", p[0], p[1], p[2])
	}
	return ""
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{"Tab files", "p paste", "a samples", "i inspect", "o route", "n algorithm", "m mode", "h help", "q quit"}
	if m.mode == gridMode {
		keys = append([]string{"↑↓←→ move", "space select", "r reseed", "g generator", "e edges", "+/- roughness", "c to cloud"}, keys...)
	} else {
		keys = append([]string{"↑↓←→ pan", "+/- zoom", "click anchor"}, keys...)
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
