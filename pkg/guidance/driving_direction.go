package guidance

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
)

// DrivingDirection. one turn-by-turn step. distance, time & max slope cover the road from this step to the next one.
type DrivingDirection struct {
	Turn            TurnType       `json:"turn"`
	Description     string         `json:"description"`
	StreetName      string         `json:"street_name,omitempty"`
	Location        geo.Coordinate `json:"location"`
	Bearing         float64        `json:"bearing"`
	Distance        float64        `json:"distance"` // meter
	TimeMinutes     float64        `json:"time_minutes"`
	MaxSlopePercent float64        `json:"max_slope_percent"`
	Polyline        string         `json:"polyline,omitempty"`

	points []geo.Coordinate
}

// DirectionBuilder. builds driving directions from the edges of one path, single use.
type DirectionBuilder struct {
	graph       Graph
	directions  []*DrivingDirection
	current     *DrivingDirection
	prevEdge    *datastructure.Edge
	prevBearing float64
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{
		graph:      graph,
		directions: make([]*DrivingDirection, 0),
	}
}

// AddEdge. edges must be added in path order. minutes & slopePercent are the re-evaluated values of the edge.
func (db *DirectionBuilder) AddEdge(edgeId datastructure.Index, minutes, slopePercent float64) {
	e := db.graph.GetEdge(edgeId)
	tail := db.graph.GetVertex(e.GetTail())
	head := db.graph.GetVertex(e.GetHead())
	bearing := edgeBearing(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon())

	if db.prevEdge == nil {
		db.newDirection(START, e, tail, bearing)
	} else {
		turn := getTurnDirection(db.prevBearing, bearing)
		if isLeavingCurrentStreet(db.prevEdge, e) ||
			(turn != CONTINUE_ON_STREET && db.getAlternativeTurns(e.GetTail(), e.GetHead(), db.prevEdge.GetTail()) > 0) {
			db.newDirection(turn, e, tail, bearing)
		}
	}

	db.current.Distance += e.GetLength()
	db.current.TimeMinutes += minutes
	db.current.MaxSlopePercent = math.Max(db.current.MaxSlopePercent, math.Abs(slopePercent))
	db.current.points = append(db.current.points, head.GetCoordinate())

	db.prevEdge = e
	db.prevBearing = bearing
}

func (db *DirectionBuilder) newDirection(turn TurnType, e *datastructure.Edge, tail *datastructure.Vertex, bearing float64) {
	db.current = &DrivingDirection{
		Turn:       turn,
		StreetName: e.GetStreetName(),
		Location:   tail.GetCoordinate(),
		Bearing:    bearing,
		points:     []geo.Coordinate{tail.GetCoordinate()},
	}
	db.directions = append(db.directions, db.current)
}

// Finish. appends the arrival step. returns an empty list if no edge was added.
func (db *DirectionBuilder) Finish() []DrivingDirection {
	if db.prevEdge == nil {
		return []DrivingDirection{}
	}
	last := db.graph.GetVertex(db.prevEdge.GetHead())
	db.directions = append(db.directions, &DrivingDirection{
		Turn:     FINISH,
		Location: last.GetCoordinate(),
		Bearing:  db.prevBearing,
	})

	directions := make([]DrivingDirection, 0, len(db.directions))
	for _, d := range db.directions {
		d.Description = d.getDescription()
		if len(d.points) > 1 {
			d.Polyline = geo.PolylineFromCoords(d.points)
		}
		directions = append(directions, *d)
	}
	return directions
}

func (d *DrivingDirection) getDescription() string {
	switch d.Turn {
	case START:
		if isEmpty(d.StreetName) {
			return fmt.Sprintf("Head %s", bearingToCompass(d.Bearing))
		}
		return fmt.Sprintf("Head %s on %s", bearingToCompass(d.Bearing), d.StreetName)
	case FINISH:
		return "You have arrived at your destination"
	case CONTINUE_ON_STREET:
		if isEmpty(d.StreetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", d.StreetName)
	}

	dir := getDirectionDescription(d.Turn)
	if isEmpty(d.StreetName) {
		return dir
	}
	return fmt.Sprintf("%s onto %s", dir, d.StreetName)
}

func getDirectionDescription(turn TurnType) string {
	switch turn {
	case TURN_SHARP_LEFT:
		return "Turn sharp left"
	case TURN_LEFT:
		return "Turn left"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right"
	case TURN_RIGHT:
		return "Turn right"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right"
	default:
		return "Continue"
	}
}
