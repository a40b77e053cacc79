package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// ReadGeoJSON reads Point, MultiPoint, LineString and MultiLineString
// geometries, bare or inside a Feature or FeatureCollection. The third
// coordinate is the elevation; for 2D positions the feature's elevation
// property (z, elevation, elev, alt, altitude or height) is used instead.
// Polygons are not surface samples and are ignored.
func ReadGeoJSON(r io.Reader) (Data, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return Data{}, errors.New("geojson: missing type")
	}

	var d Data
	var skipped error
	parsePoint := func(v any, z *float64) (p [3]float64, ok bool) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return p, false
		}
		for k := 0; k < len(a) && k < 3; k++ {
			f, ok := a[k].(float64)
			if !ok {
				return p, false
			}
			p[k] = f
		}
		if len(a) < 3 {
			if z == nil {
				skipped = multierr.Append(skipped, fmt.Errorf("geojson: position %v has no elevation", a))
				return p, false
			}
			p[2] = *z
		}
		return p, true
	}
	parseArray := func(v any, z *float64) (pts [][3]float64) {
		arr, _ := v.([]any)
		for _, el := range arr {
			if p, ok := parsePoint(el, z); ok {
				pts = append(pts, p)
			}
		}
		return pts
	}
	walkGeom := func(g map[string]any, z *float64) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if p, ok := parsePoint(g["coordinates"], z); ok {
				d.addPoint(p)
			}
		case "MultiPoint":
			for _, p := range parseArray(g["coordinates"], z) {
				d.addPoint(p)
			}
		case "LineString":
			d.addLine(parseArray(g["coordinates"], z))
		case "MultiLineString":
			arr, _ := g["coordinates"].([]any)
			for _, el := range arr {
				d.addLine(parseArray(el, z))
			}
		}
	}
	walkFeature := func(f map[string]any) {
		g, ok := f["geometry"].(map[string]any)
		if !ok {
			return
		}
		walkGeom(g, propertyZ(f))
	}

	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				walkFeature(fm)
			}
		}
	default:
		walkGeom(raw, nil)
	}
	if d.Empty() {
		return Data{}, multierr.Append(errors.New("geojson: no points found"), skipped)
	}
	return d, nil
}

func propertyZ(f map[string]any) *float64 {
	props, _ := f["properties"].(map[string]any)
	for _, k := range zNames {
		if z, ok := props[k].(float64); ok {
			return &z
		}
	}
	return nil
}
