package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGDALStoreRoundTrip(t *testing.T) {
	store, err := NewGDALStore(t.TempDir())
	require.NoError(t, err)

	r, err := FromRows([][]float64{{0, 1.5}, {math.NaN(), -2}})
	require.NoError(t, err)
	r.GeoTransform = [6]float64{500000, 30, 0, 4000000, 0, -30}

	location, err := store.Write("NDVI_184457GMT_20200403", r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, "NDVI_184457GMT_20200403.TIF"), location)

	got, err := store.Read(location)
	require.NoError(t, err)
	assert.Equal(t, r.GeoTransform, got.GeoTransform)
	assert.Equal(t, 0.0, got.At(0, 0))
	assert.Equal(t, 1.5, got.At(1, 0))
	assert.True(t, IsNoData(got.At(0, 1)))
	assert.Equal(t, -2.0, got.At(1, 1))

	require.NoError(t, store.Delete(location))
	assert.NoFileExists(t, location)
	assert.NoError(t, store.Delete(location))
}

func TestGDALStoreFailedWriteLeavesNoFile(t *testing.T) {
	store, err := NewGDALStore(t.TempDir())
	require.NoError(t, err)

	r, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	r.Projection = "not a projection"

	_, err = store.Write("LST_184457GMT_20200403", r)
	require.Error(t, err)

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
