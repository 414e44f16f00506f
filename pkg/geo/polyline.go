package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline (precision 5) of the coordinates, lat first.
func PolylineFromCoords(coords []Coordinate) string {
	pcoords := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pcoords = append(pcoords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pcoords))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	pcoords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(pcoords))
	for _, p := range pcoords {
		coords = append(coords, NewCoordinate(p[0], p[1]))
	}
	return coords, nil
}
