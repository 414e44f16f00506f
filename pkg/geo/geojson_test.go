package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLine = []Coordinate{
	NewCoordinate(-7.7956, 110.3695),
	NewCoordinate(-7.7866, 110.3712),
	NewCoordinate(-7.7801, 110.3650),
}

func TestNewLineFeature(t *testing.T) {
	f := NewLineFeature(testLine, map[string]interface{}{"slope_category": "steep", "grade": 9.5})

	ls, ok := f.Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, ls, 3)
	assert.Equal(t, orb.Point{110.3695, -7.7956}, ls[0], "geojson positions are lon, lat")
	assert.Equal(t, "steep", f.Properties["slope_category"])
	assert.Equal(t, 9.5, f.Properties["grade"])
}

func TestLineBound(t *testing.T) {
	assert.Equal(t, []float64{}, LineBound(nil))
	assert.Equal(t, []float64{110.3650, -7.7956, 110.3712, -7.7801}, LineBound(testLine))
}

func TestPolyline(t *testing.T) {
	encoded := PolylineFromCoords(testLine)
	assert.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(testLine))
	for i := range testLine {
		assert.InDelta(t, testLine[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, testLine[i].Lon, decoded[i].Lon, 1e-5)
	}

	// google's reference example
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", PolylineFromCoords([]Coordinate{
		NewCoordinate(38.5, -120.2), NewCoordinate(40.7, -120.95), NewCoordinate(43.252, -126.453),
	}))

	_, err = CoordsFromPolyline("_p~iF~ps|U_")
	assert.Error(t, err)
}
