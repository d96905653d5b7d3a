package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forest-guardian/landsat-lst/internal/delivery"
	"github.com/forest-guardian/landsat-lst/internal/properties"
)

// EstimateScene handles the UI for running the pipeline on a scene folder
func EstimateScene() {
	PrintWarning(fmt.Sprintf("- Each scene is a folder under '%s' holding the B3..B11 '.TIF' bands and the 'MTL.txt' file.\n- Masks are '.geojson' files under '%s'.", properties.ScenesDir(), properties.MasksDir()))

	scenes, err := delivery.ListScenes(properties.ScenesDir())
	if err != nil {
		PrintError(err.Error())
		return
	}
	scene, err := SelectOption("Available scenes", scenes)
	if err != nil {
		PrintError(err.Error())
		return
	}

	products, err := ReadProducts()
	if err != nil {
		PrintError(err.Error())
		return
	}

	var mask string
	if ReadYesNo("Clip the bands to a mask?") {
		masks, err := delivery.ListMasks(properties.MasksDir())
		if err != nil {
			PrintError(err.Error())
			return
		}
		if mask, err = SelectOption("Available masks", masks); err != nil {
			PrintError(err.Error())
			return
		}
	}

	request := delivery.SceneRequest{
		Folder:    filepath.Join(properties.ScenesDir(), scene),
		Products:  products,
		Mask:      mask,
		Average:   ReadYesNo("Average the band 10 and band 11 temperatures?"),
		Quicklook: true,
		Report:    true,
		Footprint: true,
		Progress:  true,
	}

	result, err := delivery.EstimateScene(request)
	if err != nil {
		PrintError(fmt.Sprintf("Error estimating scene: %s", err.Error()))
		return
	}

	var lines []string
	for _, p := range products.Sorted() {
		a := result.Outputs[p]
		lines = append(lines, fmt.Sprintf("%s: %s (min %.4f, max %.4f, mean %.4f)", a.Product, a.Location, a.Stats.Min, a.Stats.Max, a.Stats.Mean))
	}
	PrintSuccess(fmt.Sprintf("Successful analysis!\n%s", strings.Join(lines, "\n")))
}
