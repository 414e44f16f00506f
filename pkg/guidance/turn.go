package guidance

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg/geo"
)

type TurnType int

const (
	TURN_SHARP_LEFT    TurnType = -3
	TURN_LEFT          TurnType = -2
	TURN_SLIGHT_LEFT   TurnType = -1
	CONTINUE_ON_STREET TurnType = 0
	TURN_SLIGHT_RIGHT  TurnType = 1
	TURN_RIGHT         TurnType = 2
	TURN_SHARP_RIGHT   TurnType = 3
	FINISH             TurnType = 4
	START              TurnType = 101
)

func (t TurnType) String() string {
	switch t {
	case TURN_SHARP_LEFT:
		return "sharp_left"
	case TURN_LEFT:
		return "left"
	case TURN_SLIGHT_LEFT:
		return "slight_left"
	case CONTINUE_ON_STREET:
		return "continue"
	case TURN_SLIGHT_RIGHT:
		return "slight_right"
	case TURN_RIGHT:
		return "right"
	case TURN_SHARP_RIGHT:
		return "sharp_right"
	case FINISH:
		return "finish"
	case START:
		return "start"
	default:
		return "unknown"
	}
}

func (t TurnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// edgeBearing. initial bearing of the edge (tail -> head) in degree
func edgeBearing(tailLat, tailLon, headLat, headLon float64) float64 {
	return geo.BearingTo(tailLat, tailLon, headLat, headLon)
}

/*
alignBearing. handle case ketika bearing-prevBearing > 180° atau bearing-prevBearing < -180°.

misal prevBearing 20°, bearing 350°: dif 330°, harusnya belok kiri 30°.
fix: prevBearing + 360°.

misal prevBearing 340°, bearing 10°: dif -330°, harusnya belok kanan 30°.
fix: bearing + 360°.
*/
func alignBearing(prevBearing, bearing float64) (float64, float64) {
	dif := bearing - prevBearing
	if dif > 180 {
		prevBearing += 360
	} else if dif < -180 {
		bearing += 360
	}
	return prevBearing, bearing
}

// computeDeltaBearing. signed change of heading in degree, negative is a left turn.
func computeDeltaBearing(prevBearing, bearing float64) float64 {
	prevBearing, bearing = alignBearing(prevBearing, bearing)
	return bearing - prevBearing
}

func getTurnDirection(prevBearing, bearing float64) TurnType {
	delta := computeDeltaBearing(prevBearing, bearing)
	deltaDegree := math.Abs(delta)
	if deltaDegree < 12 {
		return CONTINUE_ON_STREET
	} else if deltaDegree < 40 {
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	} else if deltaDegree < 105 {
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	} else if delta < 0 {
		return TURN_SHARP_LEFT
	}
	return TURN_SHARP_RIGHT
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "north"
	} else if bearing < 67.5 {
		return "northeast"
	} else if bearing < 112.5 {
		return "east"
	} else if bearing < 157.5 {
		return "southeast"
	} else if bearing < 202.5 {
		return "south"
	} else if bearing < 247.5 {
		return "southwest"
	} else if bearing < 292.5 {
		return "west"
	} else if bearing < 337.5 {
		return "northwest"
	}
	return "north"
}
