package pkg

import (
	"fmt"
	"strings"
)

const (
	INF_WEIGHT float64 = 1e15
)

// enum of road direction classification supplied by the road-network builder
type RoadDirection uint8

const (
	ONEWAY RoadDirection = iota
	REVERSE_ONLY
	BIDIRECTIONAL
)

func (d RoadDirection) String() string {
	switch d {
	case ONEWAY:
		return "oneway"
	case REVERSE_ONLY:
		return "reverse_only"
	default:
		return "bidirectional"
	}
}

// GetRoadDirection. unknown labels fall back to bidirectional, same as an untagged osm way.
func GetRoadDirection(direction string) RoadDirection {
	switch strings.ToLower(direction) {
	case "oneway":
		return ONEWAY
	case "reverse_only":
		return REVERSE_ONLY
	default:
		return BIDIRECTIONAL
	}
}

// enum of slope category, used to pick the fuel multiplier of an edge
type SlopeCategory uint8

const (
	FLAT SlopeCategory = iota
	GENTLE
	MODERATE
	STEEP
	EXTREME
	DESCENT
)

var slopeCategoryNames = [...]string{"flat", "gentle", "moderate", "steep", "extreme", "descent"}

func (c SlopeCategory) String() string {
	if int(c) < len(slopeCategoryNames) {
		return slopeCategoryNames[c]
	}
	return "unknown"
}

func (c SlopeCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// enum of difficulty tier of an edge for a specific vehicle
type DifficultyTier uint8

const (
	COMFORTABLE DifficultyTier = iota
	MANAGEABLE
	DIFFICULT
	IMPASSABLE
)

var difficultyTierNames = [...]string{"comfortable", "manageable", "difficult", "impassable"}

func (d DifficultyTier) String() string {
	if int(d) < len(difficultyTierNames) {
		return difficultyTierNames[d]
	}
	return "unknown"
}

func (d DifficultyTier) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsCritical. manageable & difficult segments are reported as critical sections of a route.
func (d DifficultyTier) IsCritical() bool {
	return d == MANAGEABLE || d == DIFFICULT
}

// TimeOfDay. zero value is offpeak
type TimeOfDay uint8

const (
	OFFPEAK TimeOfDay = iota
	PEAK
)

func (t TimeOfDay) String() string {
	if t == PEAK {
		return "peak"
	}
	return "offpeak"
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "peak":
		return PEAK, nil
	case "offpeak", "off_peak", "":
		return OFFPEAK, nil
	default:
		return OFFPEAK, fmt.Errorf("unknown time of day %q", s)
	}
}

// OptimizationMode. zero value is balanced
type OptimizationMode uint8

const (
	BALANCED OptimizationMode = iota
	POWER_OPTIMIZED
	FUEL_SAVER
	TIME_SAVER
)

var optimizationModeNames = [...]string{"balanced", "power_optimized", "fuel_saver", "time_saver"}

// AllOptimizationModes in the order routes are compared.
var AllOptimizationModes = []OptimizationMode{POWER_OPTIMIZED, FUEL_SAVER, TIME_SAVER, BALANCED}

func (m OptimizationMode) String() string {
	if int(m) < len(optimizationModeNames) {
		return optimizationModeNames[m]
	}
	return "unknown"
}

func (m OptimizationMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func ParseOptimizationMode(s string) (OptimizationMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BALANCED, nil
	}
	for i, name := range optimizationModeNames {
		if name == s {
			return OptimizationMode(i), nil
		}
	}
	return BALANCED, fmt.Errorf("unknown optimization mode %q", s)
}

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}
