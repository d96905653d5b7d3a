package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Footprint returns the outline of the artifact in its own coordinate
// reference system, derived from the geotransform.
func Footprint(a Artifact) (orb.Polygon, error) {
	r := a.Raster
	if r == nil {
		return nil, fmt.Errorf("footprint %s: no raster data", a.Name)
	}
	gt := r.GeoTransform
	if gt == ([6]float64{}) {
		return nil, fmt.Errorf("footprint %s: raster is not georeferenced", a.Name)
	}

	corner := func(px, py float64) orb.Point {
		return orb.Point{
			gt[0] + px*gt[1] + py*gt[2],
			gt[3] + px*gt[4] + py*gt[5],
		}
	}
	w, h := float64(r.Width), float64(r.Height)
	ring := orb.Ring{corner(0, 0), corner(w, 0), corner(w, h), corner(0, h), corner(0, 0)}
	return orb.Polygon{ring}, nil
}

// FootprintPublisher keeps a GeoJSON feature collection with one feature per
// published artifact at Path.
type FootprintPublisher struct {
	Path string

	collection *geojson.FeatureCollection
}

func (p *FootprintPublisher) Publish(a Artifact) error {
	polygon, err := Footprint(a)
	if err != nil {
		return err
	}
	if p.collection == nil {
		p.collection = geojson.NewFeatureCollection()
	}

	feature := geojson.NewFeature(polygon)
	feature.Properties["name"] = a.Name
	feature.Properties["product"] = a.Product
	feature.Properties["location"] = a.Location
	feature.Properties["projection"] = a.Raster.Projection
	feature.Properties["min"] = a.Stats.Min
	feature.Properties["max"] = a.Stats.Max
	feature.Properties["mean"] = a.Stats.Mean
	p.collection.Append(feature)

	if err := os.MkdirAll(filepath.Dir(p.Path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create footprint folder: %w", err)
	}
	file, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("failed to create GeoJSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p.collection); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return nil
}
