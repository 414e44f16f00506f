package costfunction

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
)

const (
	descentThreshold  = -2.0
	flatThreshold     = 2.0
	gentleThreshold   = 5.0
	moderateThreshold = 10.0
	steepThreshold    = 15.0
)

// SlopeInfo. grade of an edge tail -> head
type SlopeInfo struct {
	SlopePercent    float64           `json:"slope_percent"`
	Category        pkg.SlopeCategory `json:"category"`
	ElevationChange float64           `json:"elevation_change"` // meter
	FromElevation   float64           `json:"from_elevation"`
	ToElevation     float64           `json:"to_elevation"`
	PlanarDistance  float64           `json:"planar_distance"` // meter, haversine between the two endpoints
}

// ClassifySlope. descent is checked first and only for negative grades, the rest classify |slope|.
func ClassifySlope(slopePercent float64) pkg.SlopeCategory {
	if slopePercent < descentThreshold {
		return pkg.DESCENT
	}
	absSlope := math.Abs(slopePercent)
	switch {
	case absSlope < flatThreshold:
		return pkg.FLAT
	case absSlope < gentleThreshold:
		return pkg.GENTLE
	case absSlope < moderateThreshold:
		return pkg.MODERATE
	case absSlope < steepThreshold:
		return pkg.STEEP
	default:
		return pkg.EXTREME
	}
}

// elevationOf. node elevation or the configured fallback when the terrain service had none.
func (cf *SlopeCostFunction) elevationOf(v da.Index) float64 {
	if elev, ok := cf.graph.GetVertex(v).GetElevation(); ok {
		return elev
	}
	return cf.config.DefaultElevation
}

// ComputeSlope. slope percent = elevation change / planar distance * 100. zero planar distance gives zero slope.
func (cf *SlopeCostFunction) ComputeSlope(e *da.Edge) SlopeInfo {
	fromElev := cf.elevationOf(e.GetTail())
	toElev := cf.elevationOf(e.GetHead())
	change := toElev - fromElev

	planar := cf.graph.GetHaversineDistanceFromUtoV(e.GetTail(), e.GetHead())
	slope := 0.0
	if planar > 0 {
		slope = change / planar * 100
	}

	return SlopeInfo{
		SlopePercent:    slope,
		Category:        ClassifySlope(slope),
		ElevationChange: change,
		FromElevation:   fromElev,
		ToElevation:     toElev,
		PlanarDistance:  planar,
	}
}
