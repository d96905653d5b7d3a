package metadata

import (
	"fmt"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
)

type Key string

const (
	DateAcquired    Key = "DATE_ACQUIRED"
	SceneCenterTime Key = "SCENE_CENTER_TIME"
	SunElevation    Key = "SUN_ELEVATION"
)

// Keys is the fixed set of assignments read from an MTL file.
var Keys = []Key{
	DateAcquired, SceneCenterTime, SunElevation,
	"RADIANCE_MULT_BAND_10", "RADIANCE_MULT_BAND_11",
	"RADIANCE_ADD_BAND_10", "RADIANCE_ADD_BAND_11",
	"REFLECTANCE_MULT_BAND_3", "REFLECTANCE_MULT_BAND_4",
	"REFLECTANCE_MULT_BAND_5", "REFLECTANCE_MULT_BAND_6",
	"REFLECTANCE_ADD_BAND_3", "REFLECTANCE_ADD_BAND_4",
	"REFLECTANCE_ADD_BAND_5", "REFLECTANCE_ADD_BAND_6",
	"K1_CONSTANT_BAND_10", "K2_CONSTANT_BAND_10",
	"K1_CONSTANT_BAND_11", "K2_CONSTANT_BAND_11",
}

func bandKey(prefix string, b landsat.Band) Key {
	return Key(fmt.Sprintf("%s_BAND_%d", prefix, int(b)))
}

// CalibrationConstants holds the numeric calibration values of a scene and
// its acquisition date (YYYYMMDD) and time (HHMMSS, GMT).
type CalibrationConstants struct {
	Values          map[Key]float64 `json:"values"`
	DateAcquired    string          `json:"date_acquired"`
	SceneCenterTime string          `json:"scene_center_time"`
}

func (c *CalibrationConstants) Get(k Key) (float64, bool) {
	v, ok := c.Values[k]
	return v, ok
}

func (c *CalibrationConstants) mustGet(k Key) float64 {
	v, ok := c.Values[k]
	if !ok {
		panic(fmt.Sprintf("calibration constant %s not parsed", k))
	}
	return v
}

func (c *CalibrationConstants) SunElevation() float64 {
	return c.mustGet(SunElevation)
}

func (c *CalibrationConstants) ReflectanceMult(b landsat.Band) float64 {
	return c.mustGet(bandKey("REFLECTANCE_MULT", b))
}

func (c *CalibrationConstants) ReflectanceAdd(b landsat.Band) float64 {
	return c.mustGet(bandKey("REFLECTANCE_ADD", b))
}

func (c *CalibrationConstants) RadianceMult(b landsat.Band) float64 {
	return c.mustGet(bandKey("RADIANCE_MULT", b))
}

func (c *CalibrationConstants) RadianceAdd(b landsat.Band) float64 {
	return c.mustGet(bandKey("RADIANCE_ADD", b))
}

func (c *CalibrationConstants) K1(b landsat.Band) float64 {
	return c.mustGet(Key(fmt.Sprintf("K1_CONSTANT_BAND_%d", int(b))))
}

func (c *CalibrationConstants) K2(b landsat.Band) float64 {
	return c.mustGet(Key(fmt.Sprintf("K2_CONSTANT_BAND_%d", int(b))))
}

// Stamp is the {HHMMSS}GMT_{YYYYMMDD} fragment of output names.
func (c *CalibrationConstants) Stamp() string {
	return fmt.Sprintf("%sGMT_%s", c.SceneCenterTime, c.DateAcquired)
}
