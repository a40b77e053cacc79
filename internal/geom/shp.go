package geom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cgeom "github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"go.uber.org/multierr"
	"gopkg.in/src-d/go-billy.v4"
)

// ZField is the attribute column Load reads shapefile elevations from.
var ZField = "ELEVATION"

// LoadSHP reads point and polyline shapes from the shapefile at path,
// taking each shape's elevation from the zField attribute.
func LoadSHP(path, zField string) (Data, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return Data{}, fmt.Errorf("shp: %w", err)
	}
	defer dec.Close()

	var d Data
	var rowErrs error
	for row := 1; ; row++ {
		g, fields, more := dec.DecodeRowFields(zField)
		if !more {
			break
		}
		z, err := strconv.ParseFloat(strings.TrimSpace(fields[zField]), 64)
		if err != nil || !finite(z) {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("shp: row %d: bad %s %q", row, zField, fields[zField]))
			continue
		}
		lift := func(pts []cgeom.Point) [][3]float64 {
			out := make([][3]float64, len(pts))
			for i, p := range pts {
				out[i] = [3]float64{p.X, p.Y, z}
			}
			return out
		}
		switch t := g.(type) {
		case cgeom.Point:
			d.addPoint([3]float64{t.X, t.Y, z})
		case cgeom.MultiPoint:
			for _, p := range lift(t) {
				d.addPoint(p)
			}
		case cgeom.LineString:
			d.addLine(lift(t))
		case cgeom.MultiLineString:
			for _, ls := range t {
				d.addLine(lift(ls))
			}
		default:
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("shp: row %d: unsupported shape %T", row, g))
		}
	}
	if err := dec.Error(); err != nil {
		return Data{}, fmt.Errorf("shp: %w", err)
	}
	if d.Empty() {
		return Data{}, multierr.Append(errors.New("shp: no points found"), rowErrs)
	}
	return d, nil
}

// shpParts are the shapefile members copied out of a billy filesystem.
var shpParts = []string{".shp", ".shx", ".dbf"}

// loadSHPFrom copies the shapefile at path and its companions from fs into
// a scratch directory, since the decoder only opens files on disk.
func loadSHPFrom(fs billy.Filesystem, path string) (Data, error) {
	tmp, err := os.MkdirTemp("", "terrascope-shp")
	if err != nil {
		return Data{}, fmt.Errorf("shp: %w", err)
	}
	defer os.RemoveAll(tmp)

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	name := filepath.Base(stem)
	for _, ext := range shpParts {
		src := stem + ext
		if ext == ".shp" {
			src = path
		} else if _, err := fs.Stat(src); err != nil {
			src = stem + strings.ToUpper(ext)
		}
		err := copyOut(fs, src, filepath.Join(tmp, name+ext))
		if err != nil && (ext == ".shp" || !errors.Is(err, os.ErrNotExist)) {
			return Data{}, fmt.Errorf("shp: %w", err)
		}
	}
	return LoadSHP(filepath.Join(tmp, name+".shp"), ZField)
}

func copyOut(fs billy.Filesystem, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
