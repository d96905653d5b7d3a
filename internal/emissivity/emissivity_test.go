package emissivity

import (
	"math"
	"testing"

	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportionOfVegetationIsZeroAtMinAndOneAtMax(t *testing.T) {
	ndvi, err := raster.FromRows([][]float64{{-0.2, 0.1}, {0.45, math.NaN()}})
	require.NoError(t, err)

	r, err := NDVIRange(ndvi)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: -0.2, Max: 0.45}, r)

	pv, err := ProportionOfVegetation(ndvi, r)
	require.NoError(t, err)

	assert.Equal(t, 0.0, pv.At(0, 0))
	assert.Equal(t, 1.0, pv.At(0, 1))
	assert.InDelta(t, math.Pow(0.3/0.65, 2), pv.At(1, 0), 1e-12)
	assert.True(t, raster.IsNoData(pv.At(1, 1)))
}

func TestDegenerateRange(t *testing.T) {
	ndvi, err := raster.FromRows([][]float64{{0.3, 0.3}, {0.3, math.NaN()}})
	require.NoError(t, err)

	r, err := NDVIRange(ndvi)
	require.NoError(t, err)

	_, err = ProportionOfVegetation(ndvi, r)
	var degenerate *DegenerateRangeError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 0.3, degenerate.Min)
	assert.Equal(t, 0.3, degenerate.Max)
}

func TestNDVIRangeWithoutValidPixels(t *testing.T) {
	ndvi, err := raster.FromRows([][]float64{{math.NaN()}})
	require.NoError(t, err)

	_, err = NDVIRange(ndvi)
	assert.ErrorIs(t, err, raster.ErrNoValidPixels)
}

func TestLandSurfaceEmissivity(t *testing.T) {
	pv, err := raster.FromRows([][]float64{{0, 1, 0.25}})
	require.NoError(t, err)

	lse, err := LandSurfaceEmissivity(pv)
	require.NoError(t, err)

	assert.InDelta(t, 0.986, lse.At(0, 0), 1e-12)
	assert.InDelta(t, 0.990, lse.At(1, 0), 1e-12)
	assert.InDelta(t, 0.987, lse.At(2, 0), 1e-12)
}
