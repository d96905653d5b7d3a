// Package lst applies the emissivity corrected single channel algorithm to
// Landsat 8 thermal bands.
package lst

import (
	"errors"
	"math"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/raster"
)

const (
	// Lambda10 and Lambda11 are the band effective wavelengths in µm.
	Lambda10 = 10.895
	Lambda11 = 12.005

	// rho is h*c/k_B in µm·K.
	rho = 14380
)

var ErrMissingBand11 = errors.New("band 11 LST required for averaging")

// Lambda returns the wavelength constant of a thermal band.
func Lambda(b landsat.Band) (float64, bool) {
	switch b {
	case landsat.TIRS1:
		return Lambda10, true
	case landsat.TIRS2:
		return Lambda11, true
	}
	return 0, false
}

func SingleChannelValue(tb, lse, lambda float64) float64 {
	return tb / (1 + (lambda*(tb/rho))*math.Log(lse))
}

// SingleChannel returns tb / (1 + (λ * tb / 14380) * ln(lse)) in Celsius.
func SingleChannel(tb, lse *raster.Raster, lambda float64) (*raster.Raster, error) {
	return raster.Map(func(px []float64) float64 {
		return SingleChannelValue(px[0], px[1], lambda)
	}, tb, lse)
}

// Combine returns lst10, or the pixel-wise mean of both bands when average
// is set.
func Combine(lst10, lst11 *raster.Raster, average bool) (*raster.Raster, error) {
	if !average {
		return lst10, nil
	}
	if lst11 == nil {
		return nil, ErrMissingBand11
	}
	return raster.Map(func(px []float64) float64 {
		return (px[0] + px[1]) / 2
	}, lst10, lst11)
}
