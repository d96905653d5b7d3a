// Package output registers finished products with viewers: logs, quicklook
// images, footprints and a statistics report.
package output

import (
	"errors"

	"github.com/forest-guardian/landsat-lst/internal/raster"
	log "github.com/sirupsen/logrus"
)

// Artifact is a product persisted in the destination store.
type Artifact struct {
	Product  string
	Name     string
	Location string
	Raster   *raster.Raster
	Stats    raster.Stats
}

// Publisher makes a persisted artifact visible to the user.
type Publisher interface {
	Publish(a Artifact) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(a Artifact) error

func (f PublisherFunc) Publish(a Artifact) error {
	return f(a)
}

// MultiPublisher calls every publisher and joins their errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(a Artifact) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type LogPublisher struct {
	Log *log.Entry
}

func (p LogPublisher) Publish(a Artifact) error {
	entry := p.Log
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	entry.WithFields(log.Fields{
		"product":  a.Product,
		"location": a.Location,
		"min":      a.Stats.Min,
		"max":      a.Stats.Max,
		"mean":     a.Stats.Mean,
		"valid":    a.Stats.Valid,
	}).Infof("%s published", a.Name)
	return nil
}
