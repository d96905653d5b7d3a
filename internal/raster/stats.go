package raster

import (
	"math"

	"github.com/forest-guardian/landsat-lst/internal/utils"
	"golang.org/x/sync/errgroup"
)

type Stats struct {
	Min   float64 `csv:"min"`
	Max   float64 `csv:"max"`
	Mean  float64 `csv:"mean"`
	Valid int     `csv:"valid_pixels"`
}

type partial struct {
	min, max, sum float64
	count         int
}

func reduce(r *Raster) ([]partial, error) {
	workers := max(Workers, 1)
	chunks := utils.SplitRows(r.Height, workers)
	parts := make([]partial, len(chunks))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			p := partial{min: math.Inf(1), max: math.Inf(-1)}
			for _, v := range r.Data[c.Start*r.Width : c.End*r.Width] {
				if math.IsNaN(v) {
					continue
				}
				p.min = math.Min(p.min, v)
				p.max = math.Max(p.max, v)
				p.sum += v
				p.count++
			}
			parts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// Describe reduces r over its valid pixels. Min and Max do not depend on how
// the raster is split across workers.
func Describe(r *Raster) (Stats, error) {
	parts, err := reduce(r)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, p := range parts {
		if p.count == 0 {
			continue
		}
		s.Min = math.Min(s.Min, p.min)
		s.Max = math.Max(s.Max, p.max)
		sum += p.sum
		s.Valid += p.count
	}
	if s.Valid == 0 {
		return Stats{}, ErrNoValidPixels
	}
	s.Mean = sum / float64(s.Valid)
	return s, nil
}

func MinMax(r *Raster) (float64, float64, error) {
	s, err := Describe(r)
	if err != nil {
		return 0, 0, err
	}
	return s.Min, s.Max, nil
}
