// Package emissivity estimates land surface emissivity from NDVI through the
// proportion of vegetation.
package emissivity

import (
	"fmt"

	"github.com/forest-guardian/landsat-lst/internal/raster"
)

const (
	vegetationWeight = 0.004
	soilEmissivity   = 0.986
)

// DegenerateRangeError is returned when NDVI has a single value over the
// whole scene, which leaves the vegetation proportion undefined.
type DegenerateRangeError struct {
	Min, Max float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate NDVI range: min %g equals max %g", e.Min, e.Max)
}

// Range is the scene-wide NDVI minimum and maximum.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NDVIRange reduces ndvi over its valid pixels.
func NDVIRange(ndvi *raster.Raster) (Range, error) {
	min, max, err := raster.MinMax(ndvi)
	if err != nil {
		return Range{}, fmt.Errorf("NDVI range: %w", err)
	}
	return Range{Min: min, Max: max}, nil
}

func (r Range) Validate() error {
	if r.Max == r.Min {
		return &DegenerateRangeError{Min: r.Min, Max: r.Max}
	}
	return nil
}

func ProportionOfVegetationValue(ndvi float64, r Range) float64 {
	scaled := (ndvi - r.Min) / (r.Max - r.Min)
	return scaled * scaled
}

func LandSurfaceEmissivityValue(pv float64) float64 {
	return vegetationWeight*pv + soilEmissivity
}

// ProportionOfVegetation returns ((ndvi - min) / (max - min))².
func ProportionOfVegetation(ndvi *raster.Raster, r Range) (*raster.Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return raster.Apply(ndvi, func(v float64) float64 {
		return ProportionOfVegetationValue(v, r)
	})
}

// LandSurfaceEmissivity returns 0.004 * pv + 0.986.
func LandSurfaceEmissivity(pv *raster.Raster) (*raster.Raster, error) {
	return raster.Apply(pv, LandSurfaceEmissivityValue)
}
