// Package pipeline runs the land surface temperature workflow: calibration
// constants, band selection, reflectance and radiance, spectral indices,
// emissivity and the single channel LST, then persists the selected products.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/forest-guardian/landsat-lst/internal/cache"
	"github.com/forest-guardian/landsat-lst/internal/calibration"
	"github.com/forest-guardian/landsat-lst/internal/emissivity"
	"github.com/forest-guardian/landsat-lst/internal/indices"
	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/lst"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/forest-guardian/landsat-lst/output"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

// RunContext carries the collaborators of a run.
type RunContext struct {
	Store     raster.Store
	Publisher output.Publisher
	Log       *log.Entry
	Cache     cache.CacheService[metadata.CalibrationConstants]
	Progress  bool
}

type Options struct {
	Scene    landsat.Scene
	Products ProductSet
	// MaskPath is a vector file every band is clipped to before calibration.
	MaskPath string
	// Average combines the band 10 and band 11 LST estimates.
	Average bool
}

type Result struct {
	Constants *metadata.CalibrationConstants
	Outputs   map[Product]output.Artifact
	NDVIRange *emissivity.Range
	Deleted   []string
}

type stage struct {
	name string
	run  func() error
}

type run struct {
	rc   RunContext
	opts Options
	log  *log.Entry

	constants   *metadata.CalibrationConstants
	locations   map[landsat.Band]string
	reflectance map[landsat.Band]*raster.Raster
	thermal     map[landsat.Band]*raster.Raster
	products    map[Product]*raster.Raster
	ndviRange   *emissivity.Range

	// written holds every location this run created in the store.
	written []string
	kept    map[string]bool
}

// Run executes the workflow. Nothing is published unless every stage
// succeeds; locations written by a failed run are deleted.
func Run(rc RunContext, opts Options) (*Result, error) {
	if rc.Store == nil {
		return nil, errors.New("run context has no raster store")
	}
	if len(opts.Products) == 0 {
		return nil, errors.New("no products selected")
	}
	if rc.Log == nil {
		rc.Log = log.NewEntry(log.StandardLogger())
	}
	if rc.Publisher == nil {
		rc.Publisher = output.LogPublisher{Log: rc.Log}
	}

	r := &run{
		rc:          rc,
		opts:        opts,
		log:         rc.Log.WithField("products", opts.Products.String()),
		locations:   make(map[landsat.Band]string),
		reflectance: make(map[landsat.Band]*raster.Raster),
		thermal:     make(map[landsat.Band]*raster.Raster),
		products:    make(map[Product]*raster.Raster),
		kept:        make(map[string]bool),
	}

	result, err := r.execute()
	deleted := r.cleanup()
	if err != nil {
		return nil, err
	}
	result.Deleted = deleted
	return result, nil
}

func (r *run) execute() (*Result, error) {
	bands := RequiredBands(r.opts.Products, r.opts.Average)
	if err := r.opts.Scene.Require(bands...); err != nil {
		return nil, err
	}

	stages := []stage{
		{"extract metadata", r.extractMetadata},
		{"select bands", func() error { return r.selectBands(bands) }},
		{"convert bands", func() error { return r.convertBands(bands) }},
	}
	if r.opts.Products.Has(MNDWI) || r.opts.Products.Has(NDISI) {
		stages = append(stages, stage{"compute MNDWI", r.computeMNDWI})
	}
	if r.opts.Products.Has(NDISI) {
		stages = append(stages, stage{"compute NDISI", r.computeNDISI})
	}
	if r.opts.Products.Has(NDVI) || r.opts.Products.Has(LST) {
		stages = append(stages, stage{"compute NDVI", r.computeNDVI})
	}
	if r.opts.Products.Has(LST) {
		stages = append(stages, stage{"compute LST", r.computeLST})
	}

	bar := r.progressBar(len(stages))
	for _, s := range stages {
		if err := r.runStage(s); err != nil {
			return nil, err
		}
		bar.Add(1)
	}
	bar.Finish()

	return r.persist()
}

func (r *run) progressBar(n int) *progressbar.ProgressBar {
	if r.rc.Progress {
		return progressbar.Default(int64(n), "Estimating land surface temperature")
	}
	return progressbar.DefaultSilent(int64(n))
}

func (r *run) runStage(s stage) error {
	start := time.Now()
	if err := s.run(); err != nil {
		r.log.WithField("stage", s.name).WithError(err).Error("stage failed")
		return fmt.Errorf("%s: %w", s.name, err)
	}
	r.log.WithFields(log.Fields{"stage": s.name, "elapsed": time.Since(start)}).Debug("stage finished")
	return nil
}

func (r *run) extractMetadata() error {
	c, err := metadata.Load(r.opts.Scene.Metadata, r.rc.Cache)
	if err != nil {
		return err
	}
	r.constants = c
	r.log = r.log.WithField("scene", c.Stamp())
	return nil
}

func (r *run) selectBands(bands []landsat.Band) error {
	if r.opts.MaskPath == "" {
		for _, b := range bands {
			r.locations[b] = r.opts.Scene.Bands[b]
		}
		return nil
	}

	mask, err := landsat.LoadMask(r.opts.MaskPath)
	if err != nil {
		return err
	}
	r.log.WithFields(log.Fields{
		"mask":  mask.Path,
		"area":  mask.Area,
		"bound": fmt.Sprintf("%v", mask.Bound),
	}).Info("clipping bands to mask")
	r.log.WithField("geometry", mask.WKT).Debug("mask geometry")

	for _, b := range bands {
		location, err := r.rc.Store.ExtractByMask(r.opts.Scene.Bands[b], mask.Path, b.String()+"_Mask")
		if err != nil {
			return fmt.Errorf("mask %s: %w", b, err)
		}
		r.written = append(r.written, location)
		r.locations[b] = location
	}
	return nil
}

func (r *run) convertBands(bands []landsat.Band) error {
	for _, b := range bands {
		dn, err := r.rc.Store.Read(r.locations[b])
		if err != nil {
			return fmt.Errorf("read %s: %w", b, err)
		}
		if dn, err = raster.MaskValue(dn, landsat.FillValue); err != nil {
			return fmt.Errorf("fill of %s: %w", b, err)
		}
		if b.Thermal() {
			r.thermal[b], err = calibration.BandBrightnessTemperature(dn, b, r.constants)
		} else {
			r.reflectance[b], err = calibration.BandReflectance(dn, b, r.constants)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *run) computeMNDWI() (err error) {
	r.products[MNDWI], err = indices.MNDWI(r.reflectance[landsat.Green], r.reflectance[landsat.SWIR1])
	return err
}

func (r *run) computeNDISI() (err error) {
	r.products[NDISI], err = indices.NDISI(
		r.thermal[landsat.TIRS1],
		r.products[MNDWI],
		r.reflectance[landsat.NIR],
		r.reflectance[landsat.SWIR1],
	)
	return err
}

func (r *run) computeNDVI() error {
	ndvi, err := indices.NDVI(r.reflectance[landsat.NIR], r.reflectance[landsat.Red])
	if err != nil {
		return err
	}
	rng, err := emissivity.NDVIRange(ndvi)
	if err != nil {
		return err
	}
	r.products[NDVI] = ndvi
	r.ndviRange = &rng
	r.log.WithFields(log.Fields{"ndvi_min": rng.Min, "ndvi_max": rng.Max}).Debug("NDVI range")
	return nil
}

func (r *run) computeLST() error {
	pv, err := emissivity.ProportionOfVegetation(r.products[NDVI], *r.ndviRange)
	if err != nil {
		return err
	}
	lse, err := emissivity.LandSurfaceEmissivity(pv)
	if err != nil {
		return err
	}

	bands := []landsat.Band{landsat.TIRS1}
	if r.opts.Average {
		bands = append(bands, landsat.TIRS2)
	}
	estimates := make(map[landsat.Band]*raster.Raster, len(bands))
	for _, b := range bands {
		lambda, ok := lst.Lambda(b)
		if !ok {
			return fmt.Errorf("%s is not a thermal band", b)
		}
		if estimates[b], err = lst.SingleChannel(r.thermal[b], lse, lambda); err != nil {
			return fmt.Errorf("LST of %s: %w", b, err)
		}
	}

	r.products[LST], err = lst.Combine(estimates[landsat.TIRS1], estimates[landsat.TIRS2], r.opts.Average)
	return err
}

func (r *run) persist() (*Result, error) {
	result := &Result{
		Constants: r.constants,
		Outputs:   make(map[Product]output.Artifact),
		NDVIRange: r.ndviRange,
	}

	for _, p := range r.opts.Products.Sorted() {
		data := r.products[p]
		name := OutputName(p, r.constants)
		location, err := r.rc.Store.Write(name, data)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		r.written = append(r.written, location)

		stats, err := raster.Describe(data)
		if err != nil && !errors.Is(err, raster.ErrNoValidPixels) {
			return nil, fmt.Errorf("describe %s: %w", name, err)
		}
		if err != nil {
			r.log.WithField("product", p).Warn("product has no valid pixels")
		}
		result.Outputs[p] = output.Artifact{
			Product:  string(p),
			Name:     name,
			Location: location,
			Raster:   data,
			Stats:    stats,
		}
	}

	for _, p := range r.opts.Products.Sorted() {
		r.kept[result.Outputs[p].Location] = true
	}
	for _, p := range r.opts.Products.Sorted() {
		if err := r.rc.Publisher.Publish(result.Outputs[p]); err != nil {
			r.log.WithField("product", p).WithError(err).Warn("failed to publish product")
		}
	}
	return result, nil
}

// cleanup deletes every written location that is not a kept product.
func (r *run) cleanup() []string {
	var deleted []string
	for _, location := range difference(r.written, r.kept) {
		if err := r.rc.Store.Delete(location); err != nil {
			r.log.WithField("location", location).WithError(err).Warn("failed to delete intermediate raster")
			continue
		}
		deleted = append(deleted, location)
	}
	return deleted
}
