// Package calibration converts Landsat 8 digital numbers into top of
// atmosphere reflectance, spectral radiance and brightness temperature.
package calibration

import (
	"errors"
	"fmt"
	"math"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
	"github.com/forest-guardian/landsat-lst/internal/raster"
)

const kelvinOffset = 273.15

var (
	// ErrDivisionByZero is returned when the sun elevation makes the
	// reflectance correction divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is returned by the scalar brightness temperature for a
	// non-positive radiance. Raster conversions turn it into no-data.
	ErrDomain = errors.New("value outside the function domain")
)

// SunCorrection returns sin(sunElevation) for an elevation in degrees.
func SunCorrection(sunElevationDeg float64) (float64, error) {
	if math.Mod(sunElevationDeg, 180) == 0 {
		return 0, fmt.Errorf("%w: sun elevation %g°", ErrDivisionByZero, sunElevationDeg)
	}
	return math.Sin(sunElevationDeg * math.Pi / 180), nil
}

func ReflectanceValue(dn, mult, add, sunCorrection float64) float64 {
	return (mult*dn - add) / sunCorrection
}

func RadianceValue(dn, mult, add float64) float64 {
	return mult*dn + add
}

// BrightnessTemperatureValue returns the at-sensor temperature in Celsius.
func BrightnessTemperatureValue(radiance, k1, k2 float64) (float64, error) {
	if radiance <= 0 {
		return 0, fmt.Errorf("%w: radiance %g", ErrDomain, radiance)
	}
	return k2/math.Log(k1/radiance+1) - kelvinOffset, nil
}

// Reflectance applies (mult*dn - add) / sin(sunElevation). Values are not
// clamped to [0, 1].
func Reflectance(dn *raster.Raster, mult, add, sunElevationDeg float64) (*raster.Raster, error) {
	correction, err := SunCorrection(sunElevationDeg)
	if err != nil {
		return nil, err
	}
	return raster.Apply(dn, func(v float64) float64 {
		return ReflectanceValue(v, mult, add, correction)
	})
}

func Radiance(dn *raster.Raster, mult, add float64) (*raster.Raster, error) {
	return raster.Apply(dn, func(v float64) float64 {
		return RadianceValue(v, mult, add)
	})
}

// BrightnessTemperature converts radiance to Celsius. Pixels with a
// non-positive radiance become no-data.
func BrightnessTemperature(radiance *raster.Raster, k1, k2 float64) (*raster.Raster, error) {
	return raster.Apply(radiance, func(v float64) float64 {
		tb, err := BrightnessTemperatureValue(v, k1, k2)
		if err != nil {
			return math.NaN()
		}
		return tb
	})
}

// BandReflectance reads the calibration constants of an optical band.
func BandReflectance(dn *raster.Raster, b landsat.Band, c *metadata.CalibrationConstants) (*raster.Raster, error) {
	if b.Thermal() {
		return nil, fmt.Errorf("band %s has no reflectance calibration", b)
	}
	r, err := Reflectance(dn, c.ReflectanceMult(b), c.ReflectanceAdd(b), c.SunElevation())
	if err != nil {
		return nil, fmt.Errorf("reflectance of %s: %w", b, err)
	}
	return r, nil
}

// BandBrightnessTemperature chains radiance and brightness temperature for a
// thermal band.
func BandBrightnessTemperature(dn *raster.Raster, b landsat.Band, c *metadata.CalibrationConstants) (*raster.Raster, error) {
	if !b.Thermal() {
		return nil, fmt.Errorf("band %s is not a thermal band", b)
	}
	radiance, err := Radiance(dn, c.RadianceMult(b), c.RadianceAdd(b))
	if err != nil {
		return nil, fmt.Errorf("radiance of %s: %w", b, err)
	}
	tb, err := BrightnessTemperature(radiance, c.K1(b), c.K2(b))
	if err != nil {
		return nil, fmt.Errorf("brightness temperature of %s: %w", b, err)
	}
	return tb, nil
}
