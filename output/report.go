package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

type ReportRow struct {
	Product  string  `csv:"product"`
	Name     string  `csv:"name"`
	Location string  `csv:"location"`
	Min      float64 `csv:"min"`
	Max      float64 `csv:"max"`
	Mean     float64 `csv:"mean"`
	Valid    int     `csv:"valid_pixels"`
}

// ReportPublisher rewrites a CSV summary at Path every time an artifact is
// published.
type ReportPublisher struct {
	Path string

	rows []*ReportRow
}

func (p *ReportPublisher) Publish(a Artifact) error {
	p.rows = append(p.rows, &ReportRow{
		Product:  a.Product,
		Name:     a.Name,
		Location: a.Location,
		Min:      a.Stats.Min,
		Max:      a.Stats.Max,
		Mean:     a.Stats.Mean,
		Valid:    a.Stats.Valid,
	})

	if err := os.MkdirAll(filepath.Dir(p.Path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}
	file, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", p.Path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&p.rows, file); err != nil {
		return fmt.Errorf("failed to write report %s: %w", p.Path, err)
	}
	return nil
}
