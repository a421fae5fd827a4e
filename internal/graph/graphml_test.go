package graph

import (
	"encoding/xml"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/steelegbr/flowgraph/internal/model"
)

func testGraph() *Graph {
	seed := model.PersistedFlow{
		SrcAddr:  "10.0.0.1",
		DstAddr:  "10.0.0.2",
		DstPort:  22,
		Protocol: 6,
		Start:    time.Unix(1700000000, 0).UTC(),
	}
	g := newGraph(seed)
	g.addFlow("10.0.0.1", "10.0.0.2", "SSH")
	g.addFlow("10.0.0.2", "10.0.0.3", "RDP (TCP)")
	return g
}

func TestArtifactName(t *testing.T) {
	got := ArtifactName(testGraph())
	want := "10.0.0.1_10.0.0.2_22_6_1700000000.graphml"
	if got != want {
		t.Errorf("ArtifactName: got %q, want %q", got, want)
	}
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteArtifact(testGraph(), dir)
	if err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, xml.Header) {
		t.Error("Artifact missing XML declaration")
	}

	var doc graphmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Artifact is not valid XML: %v", err)
	}
	if doc.Graph.EdgeDefault != "directed" {
		t.Errorf("Expected directed graph, got %q", doc.Graph.EdgeDefault)
	}
	if len(doc.Graph.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(doc.Graph.Nodes))
	}
	if len(doc.Graph.Edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(doc.Graph.Edges))
	}

	// Sorted output: the 10.0.0.1 edge comes first and carries its label.
	first := doc.Graph.Edges[0]
	if first.Source != "10.0.0.1" || first.Target != "10.0.0.2" || first.Data.Value != "SSH" {
		t.Errorf("Unexpected first edge %+v", first)
	}
}

func TestWriteArtifactDeterministic(t *testing.T) {
	dir := t.TempDir()
	path1, err := WriteArtifact(testGraph(), dir)
	if err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}
	first, err := os.ReadFile(path1)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}

	path2, err := WriteArtifact(testGraph(), dir)
	if err != nil {
		t.Fatalf("Second WriteArtifact failed: %v", err)
	}
	second, err := os.ReadFile(path2)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}

	if string(first) != string(second) {
		t.Error("The same graph must serialize identically")
	}
}
