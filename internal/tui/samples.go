package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"terrascope/internal/band"
)

var sampleColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "dist", Width: 10},
	{Title: "x", Width: 10},
	{Title: "y", Width: 10},
	{Title: "z", Width: 9},
	{Title: "band", Width: 6},
}

// refreshSamples rebuilds the table rows from the current series.
func (m *Model) refreshSamples() {
	if m.series == nil {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showSamples = false
		m.status = "no profile yet: select two points first"
		return
	}
	rows := make([]table.Row, 0, len(m.series.elev))
	for i, z := range m.series.elev {
		c := m.series.coords[i]
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.2f", m.series.dist[i]),
			fmt.Sprintf("%.2f", c[0]),
			fmt.Sprintf("%.2f", c[1]),
			fmt.Sprintf("%.2f", z),
			band.Classify(z).String(),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(sampleColumns)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}
