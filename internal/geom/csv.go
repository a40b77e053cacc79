package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// ReadCSV reads x/y/z columns from a CSV with a header row.
// Column detection (case-insensitive): x|lon|lng|long|longitude|easting,
// y|lat|latitude|northing and z|elevation|elev|alt|altitude|height.
// Rows that fail to parse are skipped; their errors are returned only
// when no row parsed.
func ReadCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return Data{}, errors.New("csv: empty file")
	}
	idxX, idxY, idxZ := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude", "easting":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude", "northing":
			if idxY == -1 {
				idxY = i
			}
		default:
			if idxZ == -1 && isZName(h) {
				idxZ = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Data{}, errors.New("csv: x/y columns not found")
	}
	if idxZ == -1 {
		return Data{}, errors.New("csv: elevation column not found")
	}

	var d Data
	var rowErrs error
	for n, row := range recs[1:] {
		line := n + 2
		if idxX >= len(row) || idxY >= len(row) || idxZ >= len(row) {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("csv: line %d: short row", line))
			continue
		}
		var p [3]float64
		var perr error
		for k, idx := range [3]int{idxX, idxY, idxZ} {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err == nil && !finite(v) {
				err = errors.New("not finite")
			}
			if err != nil {
				perr = fmt.Errorf("csv: line %d: column %d: %w", line, idx+1, err)
				break
			}
			p[k] = v
		}
		if perr != nil {
			rowErrs = multierr.Append(rowErrs, perr)
			continue
		}
		d.addPoint(p)
	}
	if d.Empty() {
		return Data{}, multierr.Append(errors.New("csv: no valid points parsed"), rowErrs)
	}
	return d, nil
}
