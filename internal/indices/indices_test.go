package indices

import (
	"math"
	"testing"

	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(t *testing.T, r [][]float64) *raster.Raster {
	t.Helper()
	out, err := raster.FromRows(r)
	require.NoError(t, err)
	return out
}

func TestNDVI(t *testing.T) {
	nir := rows(t, [][]float64{{0.5, 0.3}, {0.2, 0.1}})
	red := rows(t, [][]float64{{0.1, 0.3}, {0.4, 0.0}})

	ndvi, err := NDVI(nir, red)
	require.NoError(t, err)

	assert.InDelta(t, 0.4/0.6, ndvi.At(0, 0), 1e-12)
	assert.Equal(t, 0.0, ndvi.At(1, 0))
	assert.InDelta(t, -0.2/0.6, ndvi.At(0, 1), 1e-12)
	assert.Equal(t, 1.0, ndvi.At(1, 1))
}

func TestNDVIStaysInRangeForPositiveSums(t *testing.T) {
	values := []float64{0.001, 0.05, 0.2, 0.5, 0.9, 1.3}
	for _, a := range values {
		for _, b := range values {
			v := NormalizedDifferenceValue(a, b)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestNDVIOfBandWithItselfIsZero(t *testing.T) {
	band := rows(t, [][]float64{{0.1, 0.7}, {math.NaN(), 0.33}})

	ndvi, err := NDVI(band, band)
	require.NoError(t, err)

	assert.Equal(t, 0.0, ndvi.At(0, 0))
	assert.Equal(t, 0.0, ndvi.At(1, 0))
	assert.True(t, raster.IsNoData(ndvi.At(0, 1)))
	assert.Equal(t, 0.0, ndvi.At(1, 1))
}

func TestZeroDenominatorIsNoDataForThatPixelOnly(t *testing.T) {
	a := rows(t, [][]float64{{0.2, -0.1}})
	b := rows(t, [][]float64{{0.2, 0.1}})

	out, err := NormalizedDifference(a, b)
	require.NoError(t, err)

	assert.Equal(t, 0.0, out.At(0, 0))
	assert.True(t, raster.IsNoData(out.At(1, 0)))
}

func TestMNDWI(t *testing.T) {
	green := rows(t, [][]float64{{0.3}})
	swir := rows(t, [][]float64{{0.1}})

	out, err := MNDWI(green, swir)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.At(0, 0), 1e-12)
}

func TestNDISI(t *testing.T) {
	tb10 := rows(t, [][]float64{{25}})
	mndwi := rows(t, [][]float64{{0.2}})
	nir := rows(t, [][]float64{{0.4}})
	swir := rows(t, [][]float64{{0.3}})

	out, err := NDISI(tb10, mndwi, nir, swir)
	require.NoError(t, err)

	mean3 := (0.2 + 0.4 + 0.3) / 3
	assert.InDelta(t, (25-mean3)/(25+mean3), out.At(0, 0), 1e-12)
}
