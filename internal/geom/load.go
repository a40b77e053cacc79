package geom

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/src-d/go-billy.v4"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".csv", ".geojson", ".json", ".kml", ".shp", ".wkt"}

// Supported reports whether Load can read the named file.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the file at path from fs, picking the format by extension.
// A shapefile's .shx and .dbf companions are read from next to it.
func Load(fs billy.Filesystem, path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".shp" {
		return loadSHPFrom(fs, path)
	}
	f, err := fs.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	switch ext {
	case ".csv":
		return ReadCSV(f)
	case ".geojson", ".json":
		return ReadGeoJSON(f)
	case ".kml":
		return ReadKML(f)
	case ".wkt":
		return ReadWKT(f)
	}
	return Data{}, errors.New("unsupported file type: " + ext)
}

// List returns the supported files directly inside dir, sorted by name.
func List(fs billy.Filesystem, dir string) ([]string, error) {
	infos, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fi := range infos {
		if fi.IsDir() || !Supported(fi.Name()) {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	return names, nil
}

var zNames = []string{"z", "elevation", "elev", "alt", "altitude", "height"}

func isZName(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range zNames {
		if n == s {
			return true
		}
	}
	return false
}
