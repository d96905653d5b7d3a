// Package raster holds the in-memory pixel grid shared by every processing
// stage, the pixel algebra over it and the stores that persist it.
package raster

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/forest-guardian/landsat-lst/internal/utils"
)

var (
	ErrShapeMismatch  = errors.New("raster shapes differ")
	ErrNoValidPixels  = errors.New("raster has no valid pixels")
	ErrEmptyOperation = errors.New("raster operation without inputs")
)

// Workers bounds the goroutines used by Map and the reductions.
var Workers = runtime.NumCPU()

// Raster is a single band grid stored row-major. NaN marks no-data.
type Raster struct {
	Width        int
	Height       int
	Data         []float64
	GeoTransform [6]float64
	Projection   string
}

func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// FromRows builds a raster from equally sized rows, mostly for tests.
func FromRows(rows [][]float64) (*Raster, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyOperation
	}
	r := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != r.Width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, y, len(row), r.Width)
		}
		copy(r.Data[y*r.Width:], row)
	}
	return r, nil
}

func NoData() float64 {
	return math.NaN()
}

func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

func (r *Raster) At(x, y int) float64 {
	return r.Data[y*r.Width+x]
}

func (r *Raster) SameShape(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Like returns an empty raster with r's shape and georeferencing.
func (r *Raster) Like() *Raster {
	out := New(r.Width, r.Height)
	out.GeoTransform = r.GeoTransform
	out.Projection = r.Projection
	return out
}

func (r *Raster) Clone() *Raster {
	out := r.Like()
	copy(out.Data, r.Data)
	return out
}

// Map evaluates fn for every pixel of inputs, which must share a shape.
// A pixel that is no-data in any input is no-data in the output, and so is
// any non-finite result of fn.
func Map(fn func(px []float64) float64, inputs ...*Raster) (*Raster, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyOperation
	}
	ref := inputs[0]
	for _, in := range inputs[1:] {
		if !ref.SameShape(in) {
			return nil, fmt.Errorf("%w: %dx%d and %dx%d", ErrShapeMismatch, ref.Width, ref.Height, in.Width, in.Height)
		}
	}

	out := ref.Like()
	utils.ParallelRows(ref.Height, Workers, func(c utils.Chunk) {
		px := make([]float64, len(inputs))
		for i := c.Start * ref.Width; i < c.End*ref.Width; i++ {
			valid := true
			for k, in := range inputs {
				v := in.Data[i]
				if math.IsNaN(v) {
					valid = false
					break
				}
				px[k] = v
			}
			if !valid {
				out.Data[i] = math.NaN()
				continue
			}
			v := fn(px)
			if math.IsInf(v, 0) {
				v = math.NaN()
			}
			out.Data[i] = v
		}
	})
	return out, nil
}

// Apply is Map for a single input.
func Apply(in *Raster, fn func(v float64) float64) (*Raster, error) {
	return Map(func(px []float64) float64 {
		return fn(px[0])
	}, in)
}

// ApplyMask sets every pixel outside keep to no-data.
func ApplyMask(in *Raster, keep []bool) (*Raster, error) {
	if len(keep) != len(in.Data) {
		return nil, fmt.Errorf("%w: mask has %d pixels, raster %d", ErrShapeMismatch, len(keep), len(in.Data))
	}
	out := in.Clone()
	for i, k := range keep {
		if !k {
			out.Data[i] = NoData()
		}
	}
	return out, nil
}

// MaskValue sets every pixel equal to v to no-data.
func MaskValue(in *Raster, v float64) (*Raster, error) {
	return Apply(in, func(x float64) float64 {
		if x == v {
			return NoData()
		}
		return x
	})
}
