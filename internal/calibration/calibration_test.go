package calibration

import (
	"math"
	"testing"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectanceFormula(t *testing.T) {
	dn, err := raster.FromRows([][]float64{{10000, 20000}})
	require.NoError(t, err)

	out, err := Reflectance(dn, 2e-5, -0.1, 30)
	require.NoError(t, err)

	// sin(30°) = 0.5
	assert.InDelta(t, (2e-5*10000+0.1)/0.5, out.At(0, 0), 1e-12)
	assert.InDelta(t, (2e-5*20000+0.1)/0.5, out.At(1, 0), 1e-12)
}

func TestReflectanceIsLinear(t *testing.T) {
	mult, add, elev := 2e-5, -0.1, 52.59
	sun := math.Sin(elev * math.Pi / 180)
	for _, dn := range []float64{1, 7500, 12345.5, 65535} {
		single := ReflectanceValue(dn, mult, add, sun)
		double := ReflectanceValue(2*dn, mult, add, sun)
		assert.InDelta(t, mult*dn/sun, double-single, 1e-12)
	}
}

func TestReflectanceIsNotClamped(t *testing.T) {
	dn, err := raster.FromRows([][]float64{{0, 100000}})
	require.NoError(t, err)

	out, err := Reflectance(dn, 2e-5, 0.1, 90)
	require.NoError(t, err)
	assert.Less(t, out.At(0, 0), 0.0)
	assert.Greater(t, out.At(1, 0), 1.0)
}

func TestReflectanceFailsForZeroSunCorrection(t *testing.T) {
	for _, elev := range []float64{0, 180, -180, 360} {
		_, err := Reflectance(raster.New(1, 1), 1, 0, elev)
		assert.ErrorIs(t, err, ErrDivisionByZero, "elevation %g", elev)
	}
}

func TestRadiance(t *testing.T) {
	dn, err := raster.FromRows([][]float64{{0, 30000}})
	require.NoError(t, err)

	out, err := Radiance(dn, 3.342e-4, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, out.At(0, 0), 1e-12)
	assert.InDelta(t, 3.342e-4*30000+0.1, out.At(1, 0), 1e-12)
}

func TestBrightnessTemperatureValue(t *testing.T) {
	tb, err := BrightnessTemperatureValue(10, 774.8853, 1321.0789)
	require.NoError(t, err)
	assert.InDelta(t, 1321.0789/math.Log(774.8853/10+1)-273.15, tb, 1e-9)

	_, err = BrightnessTemperatureValue(0, 774.8853, 1321.0789)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = BrightnessTemperatureValue(-1, 774.8853, 1321.0789)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestBrightnessTemperatureMarksDomainErrorsAsNoData(t *testing.T) {
	radiance, err := raster.FromRows([][]float64{{10, 0}, {-2, math.NaN()}})
	require.NoError(t, err)

	out, err := BrightnessTemperature(radiance, 774.8853, 1321.0789)
	require.NoError(t, err)

	assert.False(t, raster.IsNoData(out.At(0, 0)))
	assert.True(t, raster.IsNoData(out.At(1, 0)))
	assert.True(t, raster.IsNoData(out.At(0, 1)))
	assert.True(t, raster.IsNoData(out.At(1, 1)))
}

func constants() *metadata.CalibrationConstants {
	return &metadata.CalibrationConstants{
		Values: map[metadata.Key]float64{
			metadata.SunElevation:     90,
			"REFLECTANCE_MULT_BAND_4": 2e-5,
			"REFLECTANCE_ADD_BAND_4":  -0.1,
			"RADIANCE_MULT_BAND_10":   3.342e-4,
			"RADIANCE_ADD_BAND_10":    0.1,
			"K1_CONSTANT_BAND_10":     774.8853,
			"K2_CONSTANT_BAND_10":     1321.0789,
		},
	}
}

func TestBandHelpersRejectWrongBandKind(t *testing.T) {
	dn := raster.New(1, 1)
	_, err := BandReflectance(dn, landsat.TIRS1, constants())
	assert.Error(t, err)
	_, err = BandBrightnessTemperature(dn, landsat.Red, constants())
	assert.Error(t, err)
}

func TestBandBrightnessTemperature(t *testing.T) {
	dn, err := raster.FromRows([][]float64{{25000}})
	require.NoError(t, err)

	tb, err := BandBrightnessTemperature(dn, landsat.TIRS1, constants())
	require.NoError(t, err)

	radiance := 3.342e-4*25000 + 0.1
	assert.InDelta(t, 1321.0789/math.Log(774.8853/radiance+1)-273.15, tb.At(0, 0), 1e-9)

	refl, err := BandReflectance(dn, landsat.Red, constants())
	require.NoError(t, err)
	assert.InDelta(t, 2e-5*25000+0.1, refl.At(0, 0), 1e-12)
}
