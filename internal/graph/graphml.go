package graph

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// GraphML document layout. The single declared key carries the service label
// on each edge.
type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID string `xml:"id,attr"`
}

type graphmlEdge struct {
	Source string      `xml:"source,attr"`
	Target string      `xml:"target,attr"`
	Data   graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

const labelKeyID = "d0"

// ArtifactName derives the deterministic file name for a traversal graph
// from its seed flow's identifying tuple.
func ArtifactName(g *Graph) string {
	return fmt.Sprintf("%s_%s_%d_%d_%d.graphml",
		g.Seed.SrcAddr, g.Seed.DstAddr, g.Seed.DstPort, g.Seed.Protocol, g.Seed.Start.Unix())
}

// WriteArtifact serializes the graph as GraphML into dir and returns the
// file path. Nodes and edges are emitted in sorted order so the artifact is
// reproducible.
func WriteArtifact(g *Graph, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := filepath.Join(dir, ArtifactName(g))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create graph artifact: %w", err)
	}
	defer file.Close()

	if err := encodeGraphML(g, file); err != nil {
		return "", fmt.Errorf("failed to write graph artifact '%s': %w", path, err)
	}
	return path, nil
}

func encodeGraphML(g *Graph, file *os.File) error {
	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: labelKeyID, For: "edge", AttrName: "label", AttrType: "string"},
		},
		Graph: graphmlGraph{EdgeDefault: "directed"},
	}

	nodes := make([]string, 0, len(g.Nodes))
	for node := range g.Nodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	for _, node := range nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{ID: node})
	}

	edges := make([]Edge, 0, len(g.Edges))
	for edge := range g.Edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		if edges[i].Dst != edges[j].Dst {
			return edges[i].Dst < edges[j].Dst
		}
		return edges[i].Label < edges[j].Label
	})
	for _, edge := range edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: edge.Src,
			Target: edge.Dst,
			Data:   graphmlData{Key: labelKeyID, Value: edge.Label},
		})
	}

	if _, err := file.WriteString(xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(file)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}
