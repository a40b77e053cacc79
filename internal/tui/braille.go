package tui

import "terrascope/internal/terrain"

// brailleBuf is a canvas of 2x4 micro-pixels per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dots[row][col] is the braille bit of a micro-pixel within its cell.
var dots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dots[my%4][mx%2]
}

// drawLineMicro draws a line on the microgrid.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	for _, c := range terrain.Line(terrain.Coord{X: x0, Y: y0}, terrain.Coord{X: x1, Y: y1}) {
		b.setPixel(c.X, c.Y)
	}
}

// set reports whether any micro-pixel of cell (cx, cy) is on.
func (b *brailleBuf) set(cx, cy int) bool { return b.m[cy][cx] != 0 }

// glyph is the braille rune for cell (cx, cy), a space when empty.
func (b *brailleBuf) glyph(cx, cy int) rune {
	if b.m[cy][cx] == 0 {
		return ' '
	}
	return rune(0x2800 + int(b.m[cy][cx]))
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	row := make([]rune, b.w)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			row[x] = b.glyph(x, y)
		}
		out[y] = string(row)
	}
	return out
}
