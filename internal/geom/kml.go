package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Point      *kmlCoords `xml:"Point"`
	LineString *kmlCoords `xml:"LineString"`
}

// ReadKML reads Placemark Points and LineStrings. KML tuples are
// "lon,lat,alt"; tuples without an altitude are skipped. Placemarks
// inside Document and Folder elements are found at any depth.
func ReadKML(r io.Reader) (Data, error) {
	dec := xml.NewDecoder(r)
	var d Data
	var tupleErrs error
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		if pm.Point != nil {
			pts, err := parseKMLCoords(pm.Point.Coordinates)
			tupleErrs = multierr.Append(tupleErrs, err)
			for _, p := range pts {
				d.addPoint(p)
			}
		}
		if pm.LineString != nil {
			pts, err := parseKMLCoords(pm.LineString.Coordinates)
			tupleErrs = multierr.Append(tupleErrs, err)
			d.addLine(pts)
		}
	}
	if d.Empty() {
		return Data{}, multierr.Append(errors.New("kml: no points found"), tupleErrs)
	}
	return d, nil
}

// coordinates may contain multiple tuples separated by whitespace
func parseKMLCoords(s string) (pts [][3]float64, err error) {
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 3 {
			err = multierr.Append(err, fmt.Errorf("kml: tuple %q has no altitude", tuple))
			continue
		}
		var p [3]float64
		ok := true
		for k := 0; k < 3; k++ {
			v, perr := strconv.ParseFloat(strings.TrimSpace(vals[k]), 64)
			if perr != nil || !finite(v) {
				err = multierr.Append(err, fmt.Errorf("kml: bad tuple %q", tuple))
				ok = false
				break
			}
			p[k] = v
		}
		if ok {
			pts = append(pts, p)
		}
	}
	return pts, err
}
