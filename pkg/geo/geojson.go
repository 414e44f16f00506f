package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func toOrbLineString(coords []Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point{c.Lon, c.Lat})
	}
	return ls
}

// NewLineFeature. geojson LineString feature (lon,lat order) with the given properties.
func NewLineFeature(coords []Coordinate, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(toOrbLineString(coords))
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

// LineBound. bounding box of the line as [minLon, minLat, maxLon, maxLat].
func LineBound(coords []Coordinate) []float64 {
	if len(coords) == 0 {
		return []float64{}
	}
	b := toOrbLineString(coords).Bound()
	return []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
}
