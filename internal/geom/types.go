// Package geom reads surface point clouds from common vector formats.
// Every loader yields x, y, z triples; z is the elevation.
package geom

import "math"

// BBox is the horizontal extent of a dataset.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the box has a positive area.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// Pad grows the box by d on every side.
func (b BBox) Pad(d float64) BBox {
	return BBox{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Data is a point cloud plus the polylines it came from, if any. Line
// vertices are also in Points.
type Data struct {
	Points [][3]float64
	Lines  [][][3]float64
	BBox   BBox
	ZMin   float64
	ZMax   float64
}

func (d *Data) addPoint(p [3]float64) {
	if len(d.Points) == 0 {
		d.BBox = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
		d.ZMin, d.ZMax = p[2], p[2]
	} else {
		d.BBox.MinX = math.Min(d.BBox.MinX, p[0])
		d.BBox.MinY = math.Min(d.BBox.MinY, p[1])
		d.BBox.MaxX = math.Max(d.BBox.MaxX, p[0])
		d.BBox.MaxY = math.Max(d.BBox.MaxY, p[1])
		d.ZMin = math.Min(d.ZMin, p[2])
		d.ZMax = math.Max(d.ZMax, p[2])
	}
	d.Points = append(d.Points, p)
}

func (d *Data) addLine(ls [][3]float64) {
	if len(ls) == 0 {
		return
	}
	d.Lines = append(d.Lines, ls)
	for _, p := range ls {
		d.addPoint(p)
	}
}

// Empty reports whether nothing was loaded.
func (d Data) Empty() bool { return len(d.Points) == 0 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FromPoints builds Data from plain points, e.g. a flattened heightmap.
func FromPoints(pts [][3]float64) Data {
	var d Data
	for _, p := range pts {
		d.addPoint(p)
	}
	return d
}
