package geo

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinate) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lon)
}

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineMeters. haversine distance between two coordinates in meter
func HaversineMeters(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// BoundingBoxAround. box (minLat, minLon, maxLat, maxLon) that contains the circle of radius (km) around (lat, lon).
// minLon > maxLon when the box crosses the antimeridian. a circle that reaches a pole spans every longitude.
func BoundingBoxAround(lat, lon, radius float64) (float64, float64, float64, float64) {
	dr := radius / earthRadiusKM
	minLat := lat - util.RadiansToDegree(dr)
	maxLat := lat + util.RadiansToDegree(dr)
	if minLat <= -90 || maxLat >= 90 {
		return math.Max(minLat, -90), -180, math.Min(maxLat, 90), 180
	}

	// widest longitude offset of the circle, reached north or south of lat
	dLon := util.RadiansToDegree(math.Asin(math.Sin(dr) / math.Cos(util.DegreeToRadians(lat))))
	if dLon >= 180 {
		return minLat, -180, maxLat, 180
	}
	return minLat, normalizeLongitude(lon - dLon), maxLat, normalizeLongitude(lon + dLon)
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
