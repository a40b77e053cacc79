package tui

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
	chartHeight  = 8
)

// layout is where the map and chart sit on screen. View and mouse
// handling share it so clicks land where things are drawn.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
	chartH             int
}

func (m Model) layout() layout {
	var lo layout
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapY = headerHeight
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	if m.series != nil && lo.contentH >= chartHeight+6 {
		lo.chartH = chartHeight
		lo.mapH = lo.contentH - chartHeight - 1
	}
	return lo
}

// inMap converts a screen position to map-relative cell coordinates.
func (lo layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-lo.mapX, y-lo.mapY
	return cx, cy, cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
}
