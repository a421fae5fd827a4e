package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/model"
)

// fakeSearcher serves canned flows for wide and deep searches.
type fakeSearcher struct {
	flows       []model.PersistedFlow
	deepQueries int
}

func (f *fakeSearcher) WideSearch(ctx context.Context, protocol uint8, port uint16) ([]model.PersistedFlow, error) {
	var out []model.PersistedFlow
	for _, flow := range f.flows {
		if flow.Protocol == protocol && flow.DstPort == port {
			out = append(out, flow)
		}
	}
	return out, nil
}

func (f *fakeSearcher) DeepSearch(ctx context.Context, protocol uint8, port uint16, srcAddr string, notBefore, notAfter time.Time) ([]model.PersistedFlow, error) {
	f.deepQueries++
	var out []model.PersistedFlow
	for _, flow := range f.flows {
		if flow.Protocol != protocol || flow.DstPort != port || flow.SrcAddr != srcAddr {
			continue
		}
		if flow.Start.Before(notBefore) || flow.Start.After(notAfter) {
			continue
		}
		out = append(out, flow)
	}
	return out, nil
}

var graphTestBase = time.Unix(1700000000, 0).UTC()

func persisted(src, dst string, dstPort uint16, protocol uint8, startOffset time.Duration) model.PersistedFlow {
	return model.PersistedFlow{
		ID:       uuid.New(),
		SrcAddr:  src,
		DstAddr:  dst,
		SrcPort:  50000,
		DstPort:  dstPort,
		Protocol: protocol,
		Start:    graphTestBase.Add(startOffset),
		End:      graphTestBase.Add(startOffset + time.Hour),
	}
}

func sshOnly() []model.Service {
	return []model.Service{{Protocol: 6, Port: 22, Label: "SSH"}}
}

func TestBuildGraphsOneGraphPerSeed(t *testing.T) {
	searcher := &fakeSearcher{flows: []model.PersistedFlow{
		persisted("10.0.0.1", "10.0.0.2", 22, 6, 0),
		persisted("10.0.0.3", "10.0.0.4", 22, 6, 0),
	}}
	b := NewBuilder(searcher, sshOnly(), "", zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}
	if len(graphs) != 2 {
		t.Fatalf("Expected one graph per seed, got %d", len(graphs))
	}
}

func TestBuildGraphFollowsChain(t *testing.T) {
	// 10.0.0.1 -> 10.0.0.2 -> 10.0.0.3, all within the seed's window.
	searcher := &fakeSearcher{flows: []model.PersistedFlow{
		persisted("10.0.0.1", "10.0.0.2", 22, 6, 0),
		persisted("10.0.0.2", "10.0.0.3", 22, 6, time.Minute),
	}}
	b := NewBuilder(searcher, sshOnly(), "", zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}

	// The first seed's traversal picks up the onward hop.
	g := graphs[0]
	if len(g.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(g.Nodes))
	}
	if _, ok := g.Edges[Edge{Src: "10.0.0.2", Dst: "10.0.0.3", Label: "SSH"}]; !ok {
		t.Error("Missing onward edge 10.0.0.2 -> 10.0.0.3")
	}
}

func TestBuildGraphTerminatesOnCycle(t *testing.T) {
	searcher := &fakeSearcher{flows: []model.PersistedFlow{
		persisted("10.0.0.1", "10.0.0.2", 22, 6, 0),
		persisted("10.0.0.2", "10.0.0.1", 22, 6, time.Minute),
	}}
	b := NewBuilder(searcher, sshOnly(), "", zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}
	// Two seeds, each bounded by the visited set despite the cycle.
	if len(graphs) != 2 {
		t.Fatalf("Expected 2 graphs, got %d", len(graphs))
	}
	for _, g := range graphs {
		if len(g.Nodes) != 2 {
			t.Errorf("Expected 2 nodes in cyclic graph, got %d", len(g.Nodes))
		}
	}
}

func TestBuildGraphHonoursTimeWindow(t *testing.T) {
	// The onward hop starts after the seed flow ended, so it is excluded.
	searcher := &fakeSearcher{flows: []model.PersistedFlow{
		persisted("10.0.0.1", "10.0.0.2", 22, 6, 0),
		persisted("10.0.0.2", "10.0.0.3", 22, 6, 2*time.Hour),
	}}
	b := NewBuilder(searcher, sshOnly(), "", zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}
	g := graphs[0]
	if len(g.Nodes) != 2 {
		t.Errorf("Expected late hop excluded, got %d nodes", len(g.Nodes))
	}
}

func TestBuildGraphQueriesAllServices(t *testing.T) {
	services := []model.Service{
		{Protocol: 6, Port: 22, Label: "SSH"},
		{Protocol: 6, Port: 3389, Label: "RDP (TCP)"},
	}
	searcher := &fakeSearcher{flows: []model.PersistedFlow{
		persisted("10.0.0.1", "10.0.0.2", 22, 6, 0),
		// The onward hop uses a different service than the seed.
		persisted("10.0.0.2", "10.0.0.3", 3389, 6, time.Minute),
	}}
	b := NewBuilder(searcher, services, "", zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}
	g := graphs[0]
	for _, node := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if _, ok := g.Nodes[node]; !ok {
			t.Errorf("Missing node %s", node)
		}
	}
	if _, ok := g.Edges[Edge{Src: "10.0.0.1", Dst: "10.0.0.2", Label: "SSH"}]; !ok {
		t.Error("Missing seed edge 10.0.0.1 -> 10.0.0.2")
	}
	if _, ok := g.Edges[Edge{Src: "10.0.0.2", Dst: "10.0.0.3", Label: "RDP (TCP)"}]; !ok {
		t.Error("Deep search must cover every interesting service, not just the seed's")
	}
}

func TestBuildGraphsNoSeedsNoArtifacts(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(&fakeSearcher{}, sshOnly(), dir, zap.NewNop())

	graphs, err := b.BuildGraphs(context.Background())
	if err != nil {
		t.Fatalf("BuildGraphs failed: %v", err)
	}
	if len(graphs) != 0 {
		t.Errorf("Expected no graphs without seeds, got %d", len(graphs))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no artifacts, found %d files", len(entries))
	}
}

func TestServicesFromConfig(t *testing.T) {
	if got := ServicesFromConfig(nil); len(got) != len(model.InterestingServices) {
		t.Errorf("Expected built-in services as fallback, got %d", len(got))
	}

	defs := []config.ServiceDef{{Protocol: 6, Port: 8022, Label: "alt-ssh"}}
	got := ServicesFromConfig(defs)
	if len(got) != 1 || got[0].Port != 8022 || got[0].Label != "alt-ssh" {
		t.Errorf("Unexpected services %v", got)
	}
}
