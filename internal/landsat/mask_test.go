package landsat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMask(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mask.geojson")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMask(t *testing.T) {
	path := writeMask(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,2],[0,2],[0,0]]]}},
		{"type":"Feature","properties":{"name":"b"},"geometry":{"type":"Point","coordinates":[9,9]}}
	]}`)

	mask, err := LoadMask(path)
	require.NoError(t, err)

	assert.Equal(t, path, mask.Path)
	assert.Equal(t, 8.0, mask.Area)
	assert.Equal(t, 4.0, mask.Bound.Max.X())
	assert.Contains(t, mask.WKT, "MULTIPOLYGON")
}

func TestLoadMaskWithoutPolygons(t *testing.T) {
	path := writeMask(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,1]}}
	]}`)

	_, err := LoadMask(path)
	assert.Error(t, err)

	_, err = LoadMask(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}
