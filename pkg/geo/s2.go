package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Coverage. lat/lng rectangle covering a set of coordinates, used to reject query points far away from the road network.
type Coverage struct {
	rect s2.Rect
}

func NewCoverage(coords []Coordinate) Coverage {
	rb := s2.NewRectBounder()
	for _, c := range coords {
		rb.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}
	return Coverage{rect: rb.RectBound()}
}

func (c Coverage) IsEmpty() bool {
	return c.rect.IsEmpty()
}

// Contains. true if coord lies inside the coverage rectangle expanded by margin (meter).
func (c Coverage) Contains(coord Coordinate, margin float64) bool {
	if c.rect.IsEmpty() {
		return false
	}
	marginAngle := s1.Angle(margin / (earthRadiusKM * 1000))
	return c.rect.DistanceToLatLng(s2.LatLngFromDegrees(coord.Lat, coord.Lon)) <= marginAngle
}

// Bounds. (minLat, minLon, maxLat, maxLon) in degree
func (c Coverage) Bounds() (float64, float64, float64, float64) {
	return c.rect.Lo().Lat.Degrees(), c.rect.Lo().Lng.Degrees(), c.rect.Hi().Lat.Degrees(), c.rect.Hi().Lng.Degrees()
}
