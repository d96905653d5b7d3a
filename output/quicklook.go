package output

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/forest-guardian/landsat-lst/internal/properties"
)

func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

func mix(a, b properties.Color, ratio float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*ratio))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// valueToColor maps a normalized value onto the low, mid, high ramp.
func valueToColor(norm float64) color.RGBA {
	if norm <= 0.5 {
		return mix(properties.ColorMap["low"], properties.ColorMap["mid"], norm/0.5)
	}
	return mix(properties.ColorMap["mid"], properties.ColorMap["high"], (norm-0.5)/0.5)
}

// QuicklookPublisher renders every artifact as a colored PNG in Dir, stretched
// between the artifact minimum and maximum.
type QuicklookPublisher struct {
	Dir string
}

func (p QuicklookPublisher) Publish(a Artifact) error {
	if a.Raster == nil {
		return fmt.Errorf("quicklook %s: no raster data", a.Name)
	}
	if err := os.MkdirAll(p.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create quicklook folder: %w", err)
	}

	r := a.Raster
	nodata := properties.ColorMap["nodata"]
	dc := gg.NewContext(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.At(x, y)
			if math.IsNaN(v) {
				dc.SetRGB255(int(nodata.R), int(nodata.G), int(nodata.B))
			} else {
				dc.SetColor(valueToColor(normalize(v, a.Stats.Min, a.Stats.Max)))
			}
			dc.SetPixel(x, y)
		}
	}

	outputPath := filepath.Join(p.Dir, a.Name+".png")
	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save quicklook %s: %w", outputPath, err)
	}
	return nil
}
