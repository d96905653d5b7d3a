package ui

import (
	"fmt"

	"github.com/forest-guardian/landsat-lst/internal/delivery"
	"github.com/forest-guardian/landsat-lst/internal/properties"
)

// ListScenes handles the UI for viewing the scenes in the scenes folder
func ListScenes() {
	scenes, err := delivery.ListScenes(properties.ScenesDir())
	if err != nil {
		PrintError(err.Error())
		return
	}

	PrintWarning(fmt.Sprintf("To add a new scene, extract its bands and MTL file into a folder under '%s'.", properties.ScenesDir()))

	fmt.Printf("\n%sAvailable scenes:%s\n", ColorGreen, ColorReset)
	for _, s := range scenes {
		fmt.Printf("%s- %s%s\n", ColorGreen, s, ColorReset)
	}
}

// ListMasks handles the UI for viewing the clip areas in the masks folder
func ListMasks() {
	masks, err := delivery.ListMasks(properties.MasksDir())
	if err != nil {
		PrintError(err.Error())
		return
	}

	PrintWarning(fmt.Sprintf("To add a new mask, add its '.geojson' file at '%s'.", properties.MasksDir()))

	fmt.Printf("\n%sAvailable masks:%s\n", ColorGreen, ColorReset)
	for _, m := range masks {
		fmt.Printf("%s- %s%s\n", ColorGreen, m, ColorReset)
	}
}
