package landsat

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Band int

const (
	Green Band = 3
	Red   Band = 4
	NIR   Band = 5
	SWIR1 Band = 6
	TIRS1 Band = 10
	TIRS2 Band = 11
)

// AllBands lists every band the toolkit reads, in processing order.
var AllBands = []Band{Green, Red, NIR, SWIR1, TIRS1, TIRS2}

func (b Band) String() string {
	return fmt.Sprintf("B%d", int(b))
}

func (b Band) Thermal() bool {
	return b == TIRS1 || b == TIRS2
}

const metadataSuffix = "MTL.txt"

// FillValue is the Level-1 digital number of pixels outside the imaged area.
const FillValue = 0.0

// InputNotFoundError reports a band or metadata file missing from a scene.
type InputNotFoundError struct {
	Folder string
	Input  string
}

func (e *InputNotFoundError) Error() string {
	if e.Folder == "" {
		return fmt.Sprintf("input %s not provided", e.Input)
	}
	return fmt.Sprintf("input %s not found in %s", e.Input, e.Folder)
}

// Scene points at the files of one Landsat 8 acquisition.
type Scene struct {
	Folder   string
	Bands    map[Band]string
	Metadata string
}

// Locate scans folder for band files ending in B<n>.TIF and the metadata
// file ending in MTL.txt. Missing bands are reported by Require.
func Locate(folder string) (Scene, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read scene folder %s: %w", folder, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scene := Scene{Folder: folder, Bands: make(map[Band]string)}
	for _, name := range names {
		if strings.HasSuffix(name, metadataSuffix) {
			scene.Metadata = filepath.Join(folder, name)
			continue
		}
		for _, b := range AllBands {
			if strings.HasSuffix(name, b.String()+".TIF") {
				scene.Bands[b] = filepath.Join(folder, name)
			}
		}
	}

	if scene.Metadata == "" {
		return Scene{}, &InputNotFoundError{Folder: folder, Input: metadataSuffix}
	}
	return scene, nil
}

// FromPaths builds a scene from explicit files. Empty band paths are left out.
func FromPaths(metadata string, bands map[Band]string) (Scene, error) {
	if metadata == "" {
		return Scene{}, &InputNotFoundError{Input: metadataSuffix}
	}
	if _, err := os.Stat(metadata); err != nil {
		return Scene{}, &InputNotFoundError{Folder: filepath.Dir(metadata), Input: filepath.Base(metadata)}
	}
	scene := Scene{Folder: filepath.Dir(metadata), Bands: make(map[Band]string), Metadata: metadata}
	for b, p := range bands {
		if p != "" {
			scene.Bands[b] = p
		}
	}
	return scene, nil
}

// Require fails with InputNotFoundError for the first missing band.
func (s Scene) Require(bands ...Band) error {
	for _, b := range bands {
		if _, ok := s.Bands[b]; !ok {
			return &InputNotFoundError{Folder: s.Folder, Input: b.String() + ".TIF"}
		}
	}
	return nil
}
