package osmparser

import (
	"strings"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/paulmach/osm"
)

var (
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"tertiary":         {},
		"tertiary_link":    {},
		"road":             {},
		"track":            {},
		"unclassified":     {},
		"living_street":    {},
		"motorroad":        {},
	}

	// https://wiki.openstreetmap.org/wiki/Key:barrier
	// only barriers tagged access=no split the road
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)

// roadTypeSpeed. km/h used for ways without a maxspeed tag
func roadTypeSpeed(roadType string) float64 {
	switch pkg.GetHighwayType(roadType) {
	case pkg.MOTORWAY:
		return 100
	case pkg.TRUNK, pkg.MOTORROAD:
		return 80
	case pkg.PRIMARY:
		return 70
	case pkg.SECONDARY:
		return 60
	case pkg.TERTIARY:
		return 50
	case pkg.MOTORWAY_LINK, pkg.TRUNK_LINK:
		return 50
	case pkg.PRIMARY_LINK, pkg.SECONDARY_LINK, pkg.TERTIARY_LINK:
		return 40
	case pkg.UNCLASSIFIED, pkg.ROAD:
		return 40
	case pkg.RESIDENTIAL:
		return 30
	case pkg.SERVICE, pkg.TRACK:
		return 20
	case pkg.LIVING_STREET:
		return 10
	default:
		return 30
	}
}

// parseMaxSpeed. km/h from a maxspeed tag ("50", "50 km/h", "30 mph", "10 knots", "50;30").
// zone values like "TR:urban" or "none" are not usable.
func parseMaxSpeed(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	speed, err := util.ParseLeadingFloat(value)
	if err != nil || speed <= 0 {
		return 0, false
	}
	switch {
	case strings.Contains(value, "mph"):
		speed *= 1.60934
	case strings.Contains(value, "knots"):
		speed *= 1.852
	}
	return speed, true
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

// wayDirection. oneway=yes/true/1 -> oneway, oneway=-1/reverse or a forward vehicle restriction -> reverse_only.
// roundabouts and motorways are oneway unless tagged oneway=no.
func wayDirection(way *osm.Way) pkg.RoadDirection {
	oneway := strings.ToLower(way.Tags.Find("oneway"))
	forwardRestricted := isRestricted(way.Tags.Find("vehicle:forward")) || isRestricted(way.Tags.Find("motor_vehicle:forward"))
	backwardRestricted := isRestricted(way.Tags.Find("vehicle:backward")) || isRestricted(way.Tags.Find("motor_vehicle:backward"))

	switch {
	case oneway == "-1" || oneway == "reverse" || forwardRestricted:
		return pkg.REVERSE_ONLY
	case oneway == "yes" || oneway == "true" || oneway == "1" || backwardRestricted:
		return pkg.ONEWAY
	case oneway == "no" || oneway == "false" || oneway == "0":
		return pkg.BIDIRECTIONAL
	}

	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" {
		return pkg.ONEWAY
	}
	if highway := way.Tags.Find("highway"); highway == "motorway" || highway == "motorway_link" {
		return pkg.ONEWAY
	}
	return pkg.BIDIRECTIONAL
}
