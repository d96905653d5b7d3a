package raster

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landsat-lst/internal/utils"
	log "github.com/sirupsen/logrus"
)

var registerOnce sync.Once

// GDALStore reads any GDAL raster and writes Float32 GeoTIFFs into Dir.
type GDALStore struct {
	Dir string
}

func NewGDALStore(dir string) (*GDALStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	registerOnce.Do(godal.RegisterAll)
	return &GDALStore{Dir: dir}, nil
}

// gdalErrorHandler downgrades GDAL warnings to debug logs and fails on
// everything else.
func gdalErrorHandler(ec godal.ErrorCategory, code int, msg string) error {
	if ec == godal.CE_Warning {
		log.WithField("code", code).Debug(msg)
		return nil
	}
	return errors.New(msg)
}

func (s *GDALStore) path(name string) string {
	return filepath.Join(s.Dir, name+".TIF")
}

func (s *GDALStore) Read(location string) (*Raster, error) {
	var r *Raster
	err := utils.ExecuteWithMutexErr(func() error {
		ds, err := godal.Open(location, godal.ErrLogger(gdalErrorHandler))
		if err != nil {
			return fmt.Errorf("failed to open raster %s: %w", location, err)
		}
		defer ds.Close()

		width, height := ds.Structure().SizeX, ds.Structure().SizeY
		bands := ds.Bands()
		if len(bands) == 0 {
			return fmt.Errorf("raster %s has no bands", location)
		}
		band := bands[0]

		r = New(width, height)
		if err := band.Read(0, 0, r.Data, width, height); err != nil {
			return fmt.Errorf("failed to read raster data from %s: %w", location, err)
		}
		if nodata, ok := band.NoData(); ok {
			for i, v := range r.Data {
				if v == nodata {
					r.Data[i] = math.NaN()
				}
			}
		}
		if gt, err := ds.GeoTransform(); err == nil {
			r.GeoTransform = gt
		}
		r.Projection = ds.Projection()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *GDALStore) Write(name string, r *Raster) (string, error) {
	location := s.path(name)
	buf := make([]float32, len(r.Data))
	for i, v := range r.Data {
		buf[i] = float32(v)
	}

	err := utils.ExecuteWithMutexErr(func() error {
		ds, err := godal.Create(godal.GTiff, location, 1, godal.Float32, r.Width, r.Height,
			godal.CreationOption("TILED=YES", "COMPRESS=DEFLATE"))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", location, err)
		}
		if r.GeoTransform != ([6]float64{}) {
			if err := ds.SetGeoTransform(r.GeoTransform); err != nil {
				ds.Close()
				return fmt.Errorf("failed to set geotransform on %s: %w", location, err)
			}
		}
		if r.Projection != "" {
			if err := ds.SetProjection(r.Projection); err != nil {
				ds.Close()
				return fmt.Errorf("failed to set projection on %s: %w", location, err)
			}
		}
		band := ds.Bands()[0]
		if err := band.SetNoData(math.NaN()); err != nil {
			ds.Close()
			return fmt.Errorf("failed to set nodata on %s: %w", location, err)
		}
		if err := band.Write(0, 0, buf, r.Width, r.Height); err != nil {
			ds.Close()
			return fmt.Errorf("failed to write raster data to %s: %w", location, err)
		}
		return ds.Close()
	})
	if err != nil {
		s.discard(location)
		return "", err
	}
	return location, nil
}

// ExtractByMask clips location to the vector mask and crops it to the mask
// extent. Pixels outside the mask become no-data.
func (s *GDALStore) ExtractByMask(location, mask, name string) (string, error) {
	out := s.path(name)
	err := utils.ExecuteWithMutexErr(func() error {
		src, err := godal.Open(location, godal.ErrLogger(gdalErrorHandler))
		if err != nil {
			return fmt.Errorf("failed to open raster %s: %w", location, err)
		}
		defer src.Close()

		dst, err := src.Warp(out, []string{
			"-of", "GTiff",
			"-cutline", mask,
			"-crop_to_cutline",
			"-dstnodata", "0",
		}, godal.ErrLogger(gdalErrorHandler))
		if err != nil {
			return fmt.Errorf("failed to extract %s by mask %s: %w", location, mask, err)
		}
		return dst.Close()
	})
	if err != nil {
		s.discard(out)
		return "", err
	}
	return out, nil
}

func (s *GDALStore) Delete(location string) error {
	if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", location, err)
	}
	return nil
}

// discard removes a file left behind by a failed write.
func (s *GDALStore) discard(location string) {
	if err := s.Delete(location); err != nil {
		log.WithField("location", location).WithError(err).Warn("failed to remove partial raster")
	}
}
