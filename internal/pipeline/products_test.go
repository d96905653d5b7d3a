package pipeline

import (
	"testing"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts(t *testing.T) {
	set, err := ParseProducts("lst; ndvi,MNDWI")
	require.NoError(t, err)
	assert.Equal(t, []Product{NDVI, MNDWI, LST}, set.Sorted())
	assert.Equal(t, "NDVI;MNDWI;LST", set.String())

	_, err = ParseProducts("NDVI;EVI")
	assert.Error(t, err)

	_, err = ParseProducts(" ; ")
	assert.Error(t, err)
}

func TestRequiredBands(t *testing.T) {
	tests := []struct {
		name     string
		products ProductSet
		average  bool
		expected []landsat.Band
	}{
		{"ndvi", NewProductSet(NDVI), false, []landsat.Band{landsat.Red, landsat.NIR}},
		{"lst single", NewProductSet(LST), false, []landsat.Band{landsat.Red, landsat.NIR, landsat.TIRS1}},
		{"lst average", NewProductSet(NDVI, LST), true, []landsat.Band{landsat.Red, landsat.NIR, landsat.TIRS1, landsat.TIRS2}},
		{"mndwi", NewProductSet(MNDWI), false, []landsat.Band{landsat.Green, landsat.SWIR1}},
		{"ndisi", NewProductSet(NDISI), false, []landsat.Band{landsat.Green, landsat.NIR, landsat.SWIR1, landsat.TIRS1}},
		{"everything", NewProductSet(AllProducts...), true, landsat.AllBands},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredBands(tt.products, tt.average))
		})
	}
}

func TestOutputName(t *testing.T) {
	c := &metadata.CalibrationConstants{DateAcquired: "20200403", SceneCenterTime: "184457"}
	assert.Equal(t, "LST_184457GMT_20200403", OutputName(LST, c))
	assert.Equal(t, "NDVI_184457GMT_20200403", OutputName(NDVI, c))
}

func TestDifferenceKeepsOrder(t *testing.T) {
	all := []string{"B4_Mask", "NDVI_x", "B5_Mask", "LST_x"}
	keep := map[string]bool{"NDVI_x": true, "LST_x": true}
	assert.Equal(t, []string{"B4_Mask", "B5_Mask"}, difference(all, keep))
	assert.Empty(t, difference(all, map[string]bool{"B4_Mask": true, "NDVI_x": true, "B5_Mask": true, "LST_x": true}))
}
