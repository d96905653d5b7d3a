package landsat

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Mask is a clip geometry read from a GeoJSON file. Path is what the raster
// store receives as cutline.
type Mask struct {
	Path  string
	Bound orb.Bound
	Area  float64
	WKT   string
}

// LoadMask reads and validates a GeoJSON feature collection with at least one
// polygonal feature.
func LoadMask(path string) (*Mask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mask %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mask %s: %w", path, err)
	}

	var polygons orb.MultiPolygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, g)
		case orb.MultiPolygon:
			polygons = append(polygons, g...)
		}
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("mask %s has no polygon features", path)
	}

	area := planar.Area(polygons)
	if area <= 0 {
		return nil, fmt.Errorf("mask %s has an empty area", path)
	}

	return &Mask{
		Path:  path,
		Bound: polygons.Bound(),
		Area:  area,
		WKT:   wkt.MarshalString(polygons),
	}, nil
}
