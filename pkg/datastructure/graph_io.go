package datastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// RawNode. node record of the road-network file: position is (lat, lon), elevation is null when unknown.
type RawNode struct {
	Position  [2]float64 `json:"position"`
	Elevation *float64   `json:"elevation"`
}

func (n *RawNode) UnmarshalJSON(data []byte) error {
	var aux struct {
		Position  *[2]float64 `json:"position"`
		Gps       *[2]float64 `json:"gps"` // older cache files
		Elevation *float64    `json:"elevation"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Position != nil:
		n.Position = *aux.Position
	case aux.Gps != nil:
		n.Position = *aux.Gps
	default:
		return fmt.Errorf("node has no position")
	}
	n.Elevation = aux.Elevation
	return nil
}

type RawEdge struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Distance   float64 `json:"distance"`
	SpeedLimit float64 `json:"speed_limit"`
	Direction  string  `json:"direction"`
	RoadType   string  `json:"road_type"`
	StreetName string  `json:"street_name"`
	Lanes      int     `json:"lanes"`
}

// RoadNetwork. node & edge collections produced by the external road-network builder.
type RoadNetwork struct {
	Nodes map[string]RawNode `json:"nodes"`
	Edges []RawEdge          `json:"edges"`
}

func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		Nodes: make(map[string]RawNode),
		Edges: make([]RawEdge, 0),
	}
}

func (rn *RoadNetwork) AddNode(id string, lat, lon float64, elevation *float64) {
	rn.Nodes[id] = RawNode{Position: [2]float64{lat, lon}, Elevation: elevation}
}

func (rn *RoadNetwork) AddEdge(e RawEdge) {
	rn.Edges = append(rn.Edges, e)
}

func DecodeRoadNetwork(r io.Reader) (*RoadNetwork, error) {
	network := NewRoadNetwork()
	if err := json.NewDecoder(r).Decode(network); err != nil {
		return nil, fmt.Errorf("decode road network: %w", err)
	}
	return network, nil
}

// ReadRoadNetwork. reads a road-network json file, bzip2 compressed if the name ends with .bz2
func ReadRoadNetwork(filename string) (*RoadNetwork, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	return DecodeRoadNetwork(r)
}

func ReadGraph(filename string, opts ...GraphOption) (*Graph, error) {
	network, err := ReadRoadNetwork(filename)
	if err != nil {
		return nil, err
	}
	return NewGraph(network, opts...), nil
}

func (rn *RoadNetwork) WriteRoadNetwork(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := rn.encodeTo(f, strings.HasSuffix(filename, ".bz2")); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// encodeTo. the bzip2 stream trailer is only written by Close, so its error is returned.
func (rn *RoadNetwork) encodeTo(w io.Writer, compress bool) error {
	if !compress {
		bw := bufio.NewWriter(w)
		if err := json.NewEncoder(bw).Encode(rn); err != nil {
			return err
		}
		return bw.Flush()
	}

	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(bz)
	if err := json.NewEncoder(bw).Encode(rn); err != nil {
		_ = bz.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = bz.Close()
		return err
	}
	return bz.Close()
}
