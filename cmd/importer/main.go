package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/logger"
	"github.com/lintang-b-s/Slopex/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile          = flag.String("f", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf or .osm)")
	outFile          = flag.String("o", "./data/road_network.json.bz2", "road network output, bzip2 compressed if it ends with .bz2")
	fillDefaultSpeed = flag.Bool("default_speed", true, "use the highway type speed for ways without maxspeed")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	osmParser := osmparser.NewOSMParser(*fillDefaultSpeed)
	network, err := osmParser.Parse(context.Background(), *mapFile, logger)
	if err != nil {
		logger.Fatal("failed to parse openstreetmap extract", zap.String("file", *mapFile), zap.Error(err))
	}

	// sanity check, the engine drops edges whose endpoints are missing
	graph := datastructure.NewGraph(network)
	if graph.DroppedEdges() > 0 {
		logger.Warn("edges referencing unknown nodes", zap.Int("dropped_edges", graph.DroppedEdges()))
	}
	components := graph.RunKosaraju()
	if components.Count > 1 {
		logger.Warn("road network is not strongly connected, routes between components will not be found",
			zap.Int("components", components.Count),
			zap.Int("largest_component_size", components.LargestSize),
			zap.Int("vertices", graph.NumberOfVertices()))
	}

	if err := network.WriteRoadNetwork(*outFile); err != nil {
		logger.Fatal("failed to write road network", zap.String("file", *outFile), zap.Error(err))
	}

	logger.Sugar().Infof("Road network written to %s: %d nodes, %d edges. Node elevations are only set where the extract has an ele tag.",
		*outFile, len(network.Nodes), len(network.Edges))
}
