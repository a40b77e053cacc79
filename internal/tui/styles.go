package tui

import (
	"github.com/charmbracelet/lipgloss"

	"terrascope/internal/band"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	markFg    = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	markStyle  = lipgloss.NewStyle().Foreground(markFg).Bold(true)
	routeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true)

	// bandStyles paints heightmap cells by elevation band.
	bandStyles = func() (s [band.Count]lipgloss.Style) {
		for b := range s {
			s[b] = lipgloss.NewStyle().
				Background(lipgloss.Color(band.Color(band.Band(b)))).
				Foreground(lipgloss.Color("#0B0F14"))
		}
		return s
	}()
)
