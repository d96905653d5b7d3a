package output

import (
	"encoding/json"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/forest-guardian/landsat-lst/internal/raster"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifact(t *testing.T) Artifact {
	t.Helper()
	r, err := raster.FromRows([][]float64{{10, 20}, {math.NaN(), 30}})
	require.NoError(t, err)
	r.GeoTransform = [6]float64{500000, 30, 0, 4000000, 0, -30}
	r.Projection = "EPSG:32643"
	stats, err := raster.Describe(r)
	require.NoError(t, err)
	return Artifact{
		Product:  "LST",
		Name:     "LST_184457GMT_20200403",
		Location: "/tmp/LST_184457GMT_20200403.TIF",
		Raster:   r,
		Stats:    stats,
	}
}

func TestMultiPublisherJoinsErrors(t *testing.T) {
	calls := 0
	ok := PublisherFunc(func(a Artifact) error { calls++; return nil })
	failing := PublisherFunc(func(a Artifact) error { calls++; return assert.AnError })

	err := MultiPublisher{failing, ok, LogPublisher{}}.Publish(artifact(t))

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, calls)
}

func TestQuicklookPublisher(t *testing.T) {
	dir := t.TempDir()
	a := artifact(t)

	require.NoError(t, QuicklookPublisher{Dir: dir}.Publish(a))

	f, err := os.Open(filepath.Join(dir, a.Name+".png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
	r, g, b, _ = img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
	r, g, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}

func TestValueToColorRamp(t *testing.T) {
	assert.Equal(t, uint8(255), valueToColor(0.5).G)
	assert.Equal(t, 0.0, normalize(5, 5, 5))
	assert.Equal(t, 1.0, normalize(50, 0, 10))
}

func TestReportPublisher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report", "products.csv")
	p := &ReportPublisher{Path: path}
	a := artifact(t)

	require.NoError(t, p.Publish(a))
	a.Product, a.Name = "NDVI", "NDVI_184457GMT_20200403"
	require.NoError(t, p.Publish(a))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var rows []*ReportRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))

	require.Len(t, rows, 2)
	assert.Equal(t, "LST", rows[0].Product)
	assert.Equal(t, "NDVI_184457GMT_20200403", rows[1].Name)
	assert.Equal(t, 3, rows[0].Valid)
	assert.Equal(t, 30.0, rows[0].Max)
}

func TestFootprint(t *testing.T) {
	polygon, err := Footprint(artifact(t))
	require.NoError(t, err)

	ring := polygon[0]
	assert.Equal(t, 500000.0, ring[0].X())
	assert.Equal(t, 4000000.0, ring[0].Y())
	assert.Equal(t, 500060.0, ring[2].X())
	assert.Equal(t, 3999940.0, ring[2].Y())

	a := artifact(t)
	a.Raster.GeoTransform = [6]float64{}
	_, err = Footprint(a)
	assert.Error(t, err)
}

func TestFootprintPublisher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footprints.geojson")
	p := &FootprintPublisher{Path: path}

	require.NoError(t, p.Publish(artifact(t)))
	require.NoError(t, p.Publish(artifact(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 2)
	assert.Equal(t, "LST_184457GMT_20200403", doc.Features[0].Properties["name"])
}
