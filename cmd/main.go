package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/forest-guardian/landsat-lst/internal/delivery"
	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/notification"
	"github.com/forest-guardian/landsat-lst/internal/pipeline"
	"github.com/forest-guardian/landsat-lst/internal/properties"
	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/forest-guardian/landsat-lst/internal/ui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func printBanner() {
	figure1 := figure.NewFigure("Landsat", "isometric1", true)
	figure2 := figure.NewFigure("LST", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func recoverPanic() {
	r := recover()
	if r == nil {
		return
	}
	pc, file, line, ok := runtime.Caller(3)
	location := "Unknown location"
	if ok {
		location = fmt.Sprintf("%s:%d in %s", file, line, runtime.FuncForPC(pc).Name())
	}

	bannercolor.Red("\nPANIC: %v", r)
	bannercolor.Red("Location: %s", location)
	bannercolor.Red("Please check the input and try again.")

	errMessage := fmt.Sprintf("LST CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, debug.Stack())
	if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
		bannercolor.Red("Failed to send notification: %s", err.Error())
	}
	os.Exit(2)
}

type runFlags struct {
	folder    string
	metadata  string
	bands     map[string]string
	products  string
	mask      string
	average   bool
	out       string
	quicklook bool
	report    bool
	footprint bool
}

func (f runFlags) request() (delivery.SceneRequest, error) {
	products, err := pipeline.ParseProducts(f.products)
	if err != nil {
		return delivery.SceneRequest{}, err
	}

	bands := make(map[landsat.Band]string)
	for label, path := range f.bands {
		band, ok := parseBand(label)
		if !ok {
			return delivery.SceneRequest{}, fmt.Errorf("unknown band %q, expected one of %v", label, landsat.AllBands)
		}
		bands[band] = path
	}

	return delivery.SceneRequest{
		Folder:    f.folder,
		Metadata:  f.metadata,
		Bands:     bands,
		Products:  products,
		Mask:      f.mask,
		Average:   f.average,
		OutputDir: f.out,
		Quicklook: f.quicklook,
		Report:    f.report,
		Footprint: f.footprint,
		Progress:  true,
	}, nil
}

func parseBand(label string) (landsat.Band, bool) {
	for _, b := range landsat.AllBands {
		if strings.EqualFold(label, b.String()) {
			return b, true
		}
	}
	return 0, false
}

func newRunCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate land surface temperature and spectral indices for one scene",
		Example: `  lst run --folder data/scenes/LC08_L1TP_147047_20200403 --products "NDVI;LST" --average
  lst run --metadata scene_MTL.txt --band B4=b4.tif --band B5=b5.tif --band B10=b10.tif --products LST`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := f.request()
			if err != nil {
				return err
			}
			result, err := delivery.EstimateScene(request)
			if err != nil {
				return err
			}
			for _, p := range request.Products.Sorted() {
				a := result.Outputs[p]
				bannercolor.Green("%s: %s", a.Product, a.Location)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.folder, "folder", "", "scene folder holding the *B<n>.TIF bands and *MTL.txt")
	cmd.Flags().StringVar(&f.metadata, "metadata", "", "explicit MTL.txt path, used with --band")
	cmd.Flags().StringToStringVar(&f.bands, "band", nil, "explicit band path as B<n>=path, repeatable")
	cmd.Flags().StringVar(&f.products, "products", strings.Join(productNames(), ";"), "products to write, separated by ';'")
	cmd.Flags().StringVar(&f.mask, "mask", "", "GeoJSON clip area, path or name in the masks folder")
	cmd.Flags().BoolVar(&f.average, "average", false, "average the band 10 and band 11 LST")
	cmd.Flags().StringVar(&f.out, "out", "", "destination folder (default $LST_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&f.quicklook, "quicklook", false, "render a PNG preview per product")
	cmd.Flags().BoolVar(&f.report, "report", false, "write a CSV statistics report")
	cmd.Flags().BoolVar(&f.footprint, "footprint", false, "write product footprints as GeoJSON")
	cmd.MarkFlagsMutuallyExclusive("folder", "metadata")
	cmd.MarkFlagsOneRequired("folder", "metadata")
	return cmd
}

func productNames() []string {
	names := make([]string, 0, len(pipeline.AllProducts))
	for _, p := range pipeline.AllProducts {
		names = append(names, string(p))
	}
	return names
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lst",
		Short:         "Landsat 8 land surface temperature toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			properties.Load()
			log.SetLevel(properties.LogLevel())
			raster.Workers = properties.Workers()
		},
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Interactive menu over the scenes folder",
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			ui.ShowMenu()
		},
	})
	return root
}

func main() {
	defer recoverPanic()

	if err := newRootCommand().Execute(); err != nil {
		bannercolor.Red("Error: %s", err.Error())
		os.Exit(1)
	}
}
