package osmparser

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type nodeCoord struct {
	lat       float64
	lon       float64
	elevation *float64
}

type node struct {
	id    int64
	coord nodeCoord
}

type wayInfo struct {
	name      string
	highway   string
	speed     float64
	lanes     int
	direction pkg.RoadDirection
}

// OsmParser. converts an openstreetmap extract into the road network input of datastructure.NewGraph.
// nodes are split at junctions, one edge per junction-to-junction way segment.
type OsmParser struct {
	wayNodeMap       map[int64]NodeType
	acceptedNodeMap  map[int64]nodeCoord
	barrierNodes     map[int64]bool
	maxNodeID        int64
	edgeSet          map[[2]int64]struct{}
	fillDefaultSpeed bool

	network *datastructure.RoadNetwork
}

// NewOSMParser. with fillDefaultSpeed, ways without a usable maxspeed get the default speed of their highway type;
// otherwise their speed limit stays unknown (0).
func NewOSMParser(fillDefaultSpeed bool) *OsmParser {
	return &OsmParser{
		wayNodeMap:       make(map[int64]NodeType),
		acceptedNodeMap:  make(map[int64]nodeCoord),
		barrierNodes:     make(map[int64]bool),
		edgeSet:          make(map[[2]int64]struct{}),
		fillDefaultSpeed: fillDefaultSpeed,
		network:          datastructure.NewRoadNetwork(),
	}
}

func openScanner(ctx context.Context, f *os.File, mapFile string) osm.Scanner {
	if strings.HasSuffix(mapFile, ".osm") || strings.HasSuffix(mapFile, ".xml") {
		return osmxml.New(ctx, f)
	}
	return osmpbf.New(ctx, f, 0)
}

// Parse. reads an .osm.pbf (or .osm xml) file twice: first to find junction nodes, then to build edges.
func (p *OsmParser) Parse(ctx context.Context, mapFile string, logger *zap.Logger) (*datastructure.RoadNetwork, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := openScanner(ctx, f, mapFile)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++
		p.markWayNodes(way)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scan ways: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	scanner = openScanner(ctx, f, mapFile)
	defer scanner.Close()

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			p.processNode(o)
		case *osm.Way:
			// nodes precede ways in osm files, coordinates of o are known here
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%100000 == 0 {
				logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			p.processWay(o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("process ways: %w", err)
	}

	logger.Info("openstreetmap import done",
		zap.Int("ways", countWays),
		zap.Int("nodes", len(p.network.Nodes)),
		zap.Int("edges", len(p.network.Edges)))
	return p.network, nil
}

func (p *OsmParser) markWayNodes(way *osm.Way) {
	for i, n := range way.Nodes {
		id := int64(n.ID)
		if _, ok := p.wayNodeMap[id]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[id] = END_NODE
			} else {
				p.wayNodeMap[id] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[id] = JUNCTION_NODE
		}
	}
}

func (p *OsmParser) processNode(n *osm.Node) {
	id := int64(n.ID)
	p.maxNodeID = max(p.maxNodeID, id)

	if _, ok := p.wayNodeMap[id]; !ok {
		return
	}
	coord := nodeCoord{lat: n.Lat, lon: n.Lon}
	if ele := n.Tags.Find("ele"); ele != "" {
		if val, err := util.ParseLeadingFloat(ele); err == nil {
			coord.elevation = &val
		}
	}
	p.acceptedNodeMap[id] = coord

	barrierType := n.Tags.Find("barrier")
	if _, ok := acceptedBarrierType[barrierType]; ok && n.Tags.Find("access") == "no" {
		p.barrierNodes[id] = true
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func (p *OsmParser) newWayInfo(way *osm.Way) wayInfo {
	info := wayInfo{
		name:      way.Tags.Find("name"),
		highway:   way.Tags.Find("highway"),
		lanes:     1,
		direction: wayDirection(way),
	}
	if lanes, err := strconv.Atoi(way.Tags.Find("lanes")); err == nil && lanes > 0 {
		info.lanes = lanes
	}

	if speed, ok := parseMaxSpeed(way.Tags.Find("maxspeed")); ok {
		info.speed = speed
	} else if p.fillDefaultSpeed {
		info.speed = roadTypeSpeed(info.highway)
	}
	return info
}

func (p *OsmParser) processWay(way *osm.Way) {
	info := p.newWayInfo(way)

	waySegment := []node{}
	for _, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			// node outside the extract, cut the way here
			if len(waySegment) > 1 {
				p.processSegment(waySegment, info)
			}
			waySegment = []node{}
			continue
		}
		nodeData := node{id: int64(wayNode.ID), coord: coord}
		if p.isJunctionNode(nodeData.id) {
			waySegment = append(waySegment, nodeData)
			p.processSegment(waySegment, info)
			waySegment = []node{nodeData}
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, info)
	}
}

func (p *OsmParser) processSegment(segment []node, info wayInfo) {
	if len(segment) < 2 {
		return
	}
	if len(segment) == 2 && segment[0].id == segment[1].id {
		return
	}
	if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// closed loop, split so both halves get distinct endpoints
		p.splitAtBarriers(segment[:len(segment)-1], info)
		p.splitAtBarriers(segment[len(segment)-2:], info)
		return
	}
	p.splitAtBarriers(segment, info)
}

// splitAtBarriers. a closed barrier (access=no) disconnects the road: the edge after it starts at a copy of the barrier node.
func (p *OsmParser) splitAtBarriers(segment []node, info wayInfo) {
	waySegment := []node{}
	for _, nodeData := range segment {
		if !p.barrierNodes[nodeData.id] {
			waySegment = append(waySegment, nodeData)
			continue
		}
		if len(waySegment) != 0 {
			waySegment = append(waySegment, nodeData)
			p.addEdge(waySegment, info)
		}
		waySegment = []node{p.copyNode(nodeData)}
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, info)
	}
}

func (p *OsmParser) copyNode(nodeData node) node {
	p.maxNodeID++
	p.acceptedNodeMap[p.maxNodeID] = nodeData.coord
	return node{id: p.maxNodeID, coord: nodeData.coord}
}

func (p *OsmParser) addNode(n node) string {
	id := strconv.FormatInt(n.id, 10)
	if _, ok := p.network.Nodes[id]; !ok {
		p.network.AddNode(id, n.coord.lat, n.coord.lon, n.coord.elevation)
	}
	return id
}

func (p *OsmParser) addEdge(segment []node, info wayInfo) {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		return
	}

	key := [2]int64{from.id, to.id}
	reverseKey := [2]int64{to.id, from.id}
	if _, ok := p.edgeSet[key]; ok {
		return
	}
	if info.direction == pkg.BIDIRECTIONAL {
		if _, ok := p.edgeSet[reverseKey]; ok {
			return
		}
	}
	p.edgeSet[key] = struct{}{}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	p.network.AddEdge(datastructure.RawEdge{
		From:       p.addNode(from),
		To:         p.addNode(to),
		Distance:   distance * 1000,
		SpeedLimit: info.speed,
		Direction:  info.direction.String(),
		RoadType:   info.highway,
		StreetName: info.name,
		Lanes:      info.lanes,
	})
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return way.Tags.Find("junction") != ""
	}
	if _, ok := acceptedHighway[highway]; !ok {
		return false
	}
	access := way.Tags.Find("motor_vehicle")
	if access == "" {
		access = way.Tags.Find("access")
	}
	return access != "no" && access != "private"
}
