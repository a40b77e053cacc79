package geom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// ParseWKT parses WKT geometries carrying a z ordinate, one per line.
// Supported: POINT, MULTIPOINT, LINESTRING and MULTILINESTRING, with or
// without the Z tag, e.g. "POINT Z (1 2 30)" or "LINESTRING (0 0 1, 1 1 2)".
func ParseWKT(wkt string) (Data, error) {
	return ReadWKT(strings.NewReader(wkt))
}

// ReadWKT is ParseWKT over a reader.
func ReadWKT(r io.Reader) (Data, error) {
	var d Data
	var errs error
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		errs = multierr.Append(errs, d.addWKT(s))
	}
	if err := sc.Err(); err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	if d.Empty() {
		if errs == nil {
			return Data{}, errors.New("wkt: empty input")
		}
		return Data{}, errs
	}
	return d, nil
}

func (d *Data) addWKT(s string) error {
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return fmt.Errorf("wkt: %q: missing coordinates", s)
	}
	tag := strings.Fields(strings.ToUpper(s[:i]))
	if len(tag) == 0 {
		return fmt.Errorf("wkt: %q: missing geometry type", s)
	}
	kind := strings.TrimSuffix(tag[0], "Z")
	body := s[i+1 : j]

	stripParens := func(s string) string {
		return strings.NewReplacer("(", "", ")", "").Replace(s)
	}
	switch kind {
	case "POINT", "MULTIPOINT":
		pts, err := parseWKTTuples(stripParens(body))
		for _, p := range pts {
			d.addPoint(p)
		}
		return err
	case "LINESTRING":
		pts, err := parseWKTTuples(body)
		d.addLine(pts)
		return err
	case "MULTILINESTRING":
		var errs error
		for _, part := range strings.Split(body, "),") {
			pts, err := parseWKTTuples(stripParens(part))
			errs = multierr.Append(errs, err)
			d.addLine(pts)
		}
		return errs
	}
	return fmt.Errorf("wkt: unsupported type %s", tag[0])
}

// split by comma into tuples "x y z"
func parseWKTTuples(block string) (pts [][3]float64, err error) {
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) < 3 {
			err = multierr.Append(err, fmt.Errorf("wkt: tuple %q has no z", strings.TrimSpace(tup)))
			continue
		}
		var p [3]float64
		ok := true
		for k := 0; k < 3; k++ {
			v, perr := strconv.ParseFloat(parts[k], 64)
			if perr != nil || !finite(v) {
				err = multierr.Append(err, fmt.Errorf("wkt: bad tuple %q", strings.TrimSpace(tup)))
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
