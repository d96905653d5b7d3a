// Package indices computes normalized difference spectral indices over
// reflectance rasters.
package indices

import (
	"math"

	"github.com/forest-guardian/landsat-lst/internal/raster"
)

// NormalizedDifferenceValue returns (a - b) / (a + b), or NaN when a + b is 0.
func NormalizedDifferenceValue(a, b float64) float64 {
	denominator := a + b
	if denominator == 0 {
		return math.NaN()
	}
	return (a - b) / denominator
}

func NormalizedDifference(a, b *raster.Raster) (*raster.Raster, error) {
	return raster.Map(func(px []float64) float64 {
		return NormalizedDifferenceValue(px[0], px[1])
	}, a, b)
}

// NDVI uses band 5 (NIR) and band 4 (red) reflectance.
func NDVI(nir, red *raster.Raster) (*raster.Raster, error) {
	return NormalizedDifference(nir, red)
}

// MNDWI uses band 3 (green) and band 6 (SWIR1) reflectance.
func MNDWI(green, swir1 *raster.Raster) (*raster.Raster, error) {
	return NormalizedDifference(green, swir1)
}

// NDISI contrasts band 10 brightness temperature (Celsius) with the mean of
// MNDWI, NIR and SWIR1 reflectance.
func NDISI(tb10, mndwi, nir, swir1 *raster.Raster) (*raster.Raster, error) {
	return raster.Map(func(px []float64) float64 {
		mean3 := (px[1] + px[2] + px[3]) / 3
		return NormalizedDifferenceValue(px[0], mean3)
	}, tb10, mndwi, nir, swir1)
}
