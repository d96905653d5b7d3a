package delivery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forest-guardian/landsat-lst/internal/cache"
	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
	"github.com/forest-guardian/landsat-lst/internal/notification"
	"github.com/forest-guardian/landsat-lst/internal/pipeline"
	"github.com/forest-guardian/landsat-lst/internal/properties"
	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/forest-guardian/landsat-lst/output"
	log "github.com/sirupsen/logrus"
)

// SceneRequest describes one run. Either Folder or Metadata with explicit
// Bands must be set.
type SceneRequest struct {
	Folder   string
	Metadata string
	Bands    map[landsat.Band]string

	Products pipeline.ProductSet
	Mask     string
	Average  bool

	OutputDir string
	Quicklook bool
	Report    bool
	Footprint bool
	Progress  bool
}

func (r SceneRequest) scene() (landsat.Scene, error) {
	if r.Metadata != "" {
		return landsat.FromPaths(r.Metadata, r.Bands)
	}
	if r.Folder == "" {
		return landsat.Scene{}, errors.New("either a scene folder or a metadata file is required")
	}
	return landsat.Locate(r.Folder)
}

func (r SceneRequest) outputDir() string {
	if r.OutputDir != "" {
		return r.OutputDir
	}
	return properties.OutputDir()
}

// ResolveMask accepts a path to a GeoJSON file or the name of a file in
// the masks folder, with or without extension.
func ResolveMask(mask string) (string, error) {
	if mask == "" {
		return "", nil
	}
	candidates := []string{mask}
	if !strings.ContainsRune(mask, os.PathSeparator) {
		name := strings.TrimSuffix(mask, ".geojson") + ".geojson"
		candidates = append(candidates, filepath.Join(properties.MasksDir(), name))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &landsat.InputNotFoundError{Folder: properties.MasksDir(), Input: mask}
}

// Publishers assembles the viewers enabled for a request. Logging and the
// Discord webhook are always on; the webhook is a no-op when unset.
func Publishers(r SceneRequest, entry *log.Entry) output.MultiPublisher {
	dir := r.outputDir()
	publishers := output.MultiPublisher{
		output.LogPublisher{Log: entry},
		notification.DiscordPublisher{URL: properties.DiscordSuccessNotificationUrl()},
	}
	if r.Quicklook {
		publishers = append(publishers, output.QuicklookPublisher{Dir: filepath.Join(dir, "quicklook")})
	}
	if r.Report {
		publishers = append(publishers, &output.ReportPublisher{Path: filepath.Join(dir, "report.csv")})
	}
	if r.Footprint {
		publishers = append(publishers, &output.FootprintPublisher{Path: filepath.Join(dir, "footprints.geojson")})
	}
	return publishers
}

// EstimateScene runs the pipeline against a GeoTIFF store in the request
// output folder and reports the outcome on Discord.
func EstimateScene(r SceneRequest) (*pipeline.Result, error) {
	result, err := estimateScene(r)
	if err != nil {
		if notifyErr := notification.SendDiscordErrorNotification(fmt.Sprintf("LST CLI\n\n%s", err.Error())); notifyErr != nil {
			log.WithError(notifyErr).Warn("failed to send error notification")
		}
		return nil, err
	}

	var names []string
	for _, p := range r.Products.Sorted() {
		names = append(names, result.Outputs[p].Location)
	}
	message := fmt.Sprintf("LST CLI\n\nScene %s processed\n%s", result.Constants.Stamp(), strings.Join(names, "\n"))
	if err := notification.SendDiscordSuccessNotification(message); err != nil {
		log.WithError(err).Warn("failed to send success notification")
	}
	return result, nil
}

func estimateScene(r SceneRequest) (*pipeline.Result, error) {
	scene, err := r.scene()
	if err != nil {
		return nil, err
	}
	mask, err := ResolveMask(r.Mask)
	if err != nil {
		return nil, err
	}

	store, err := raster.NewGDALStore(r.outputDir())
	if err != nil {
		return nil, err
	}

	entry := log.WithField("scene", filepath.Base(scene.Folder))
	rc := pipeline.RunContext{
		Store:     store,
		Publisher: Publishers(r, entry),
		Log:       entry,
		Cache:     cache.NewFileCache[metadata.CalibrationConstants](properties.CacheDir(), "metadata"),
		Progress:  r.Progress,
	}
	return pipeline.Run(rc, pipeline.Options{
		Scene:    scene,
		Products: r.Products,
		MaskPath: mask,
		Average:  r.Average,
	})
}

// ListScenes returns the folders under dir that hold an MTL file.
func ListScenes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes folder %s: %w", dir, err)
	}
	var scenes []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, e.Name(), "*MTL.txt"))
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			scenes = append(scenes, e.Name())
		}
	}
	sort.Strings(scenes)
	return scenes, nil
}

// ListMasks returns the GeoJSON file names under dir without extension.
func ListMasks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read masks folder %s: %w", dir, err)
	}
	var masks []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".geojson") {
			masks = append(masks, strings.TrimSuffix(e.Name(), ".geojson"))
		}
	}
	sort.Strings(masks)
	return masks, nil
}
