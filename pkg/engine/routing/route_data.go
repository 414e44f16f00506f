package routing

import (
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/guidance"
)

// Segment. one traversed edge re-evaluated under the unrelaxed vehicle capability.
type Segment struct {
	From            string             `json:"from"`
	To              string             `json:"to"`
	Distance        float64            `json:"distance"` // meter
	SlopePercent    float64            `json:"slope_percent"`
	Category        pkg.SlopeCategory  `json:"category"`
	Difficulty      pkg.DifficultyTier `json:"difficulty"`
	ElevationChange float64            `json:"elevation_change"`
	FromElevation   float64            `json:"from_elevation"`
	ToElevation     float64            `json:"to_elevation"`
	Fuel            float64            `json:"fuel"` // liter
	FuelCost        float64            `json:"fuel_cost"`
	TimeMinutes     float64            `json:"time_minutes"`
	Passable        bool               `json:"passable"`
	StreetName      string             `json:"street_name,omitempty"`
	RoadType        string             `json:"road_type,omitempty"`
	Lanes           int                `json:"lanes,omitempty"`
	Oneway          bool               `json:"oneway"`
}

// RouteSummary. result of one route query, owned by the caller.
type RouteSummary struct {
	Path        []string         `json:"path"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	Segments    []Segment        `json:"segments"`

	Directions []guidance.DrivingDirection `json:"directions"`

	TotalDistance      float64 `json:"total_distance"` // meter
	TotalFuel          float64 `json:"total_fuel"`     // liter
	TotalFuelCost      float64 `json:"total_fuel_cost"`
	TotalTimeMinutes   float64 `json:"total_time_minutes"`
	MaxSlope           float64 `json:"max_slope"` // max |slope| percent
	ElevationGain      float64 `json:"elevation_gain"`
	ElevationLoss      float64 `json:"elevation_loss"`
	CO2Kg              float64 `json:"co2_kg"`
	CO2PerKmG          float64 `json:"co2_per_km_g"`
	CriticalSections   int     `json:"critical_sections"`
	ImpassableSegments int     `json:"impassable_segments"`
	Feasible           bool    `json:"feasible"`

	Mode      pkg.OptimizationMode `json:"mode"`
	TimeOfDay pkg.TimeOfDay        `json:"time_of_day"`
	Vehicle   string               `json:"vehicle,omitempty"`

	Stats *SearchStats `json:"stats,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (rs *RouteSummary) HasError() bool {
	return rs.Error != ""
}

// GetDistanceKm. total distance in km
func (rs *RouteSummary) GetDistanceKm() float64 {
	return rs.TotalDistance / 1000
}
