// Package graph discovers candidate lateral-movement paths by walking
// correlated flows over interesting administrative services.
package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

// Edge is one directed, labelled hop between two addresses.
type Edge struct {
	Src   string
	Dst   string
	Label string
}

// Graph is the traversal grown from one seed flow.
type Graph struct {
	Seed  model.PersistedFlow
	Nodes map[string]struct{}
	Edges map[Edge]struct{}
}

func newGraph(seed model.PersistedFlow) *Graph {
	return &Graph{
		Seed:  seed,
		Nodes: make(map[string]struct{}),
		Edges: make(map[Edge]struct{}),
	}
}

func (g *Graph) addFlow(src, dst, label string) {
	g.Nodes[src] = struct{}{}
	g.Nodes[dst] = struct{}{}
	g.Edges[Edge{Src: src, Dst: dst, Label: label}] = struct{}{}
}

// Builder grows one traversal graph per seed flow. It is read-only against
// the store and safe to run alongside the collection pipeline.
type Builder struct {
	store     model.Searcher
	services  []model.Service
	outputDir string
	logger    *zap.Logger
}

// NewBuilder creates a builder searching for the given interesting services.
// An empty outputDir suppresses artifact files.
func NewBuilder(store model.Searcher, services []model.Service, outputDir string, logger *zap.Logger) *Builder {
	return &Builder{
		store:     store,
		services:  services,
		outputDir: outputDir,
		logger:    logger.With(logging.Component("graph")),
	}
}

// BuildGraphs runs the wide search for every interesting service and grows
// one graph per matching seed flow, writing each out as a GraphML artifact.
// Seeds are explored independently; overlapping traversals are expected.
func (b *Builder) BuildGraphs(ctx context.Context) ([]*Graph, error) {
	var graphs []*Graph
	for _, svc := range b.services {
		b.logger.Info("searching for seed flows",
			zap.Uint8("protocol", svc.Protocol),
			zap.Uint16("port", svc.Port),
			zap.String("label", svc.Label),
		)
		seeds, err := b.store.WideSearch(ctx, svc.Protocol, svc.Port)
		if err != nil {
			return nil, err
		}
		for _, seed := range seeds {
			b.logger.Debug("found seed flow", zap.Stringer("flow", seed))
			g, err := b.buildGraph(ctx, svc, seed)
			if err != nil {
				return nil, err
			}
			if b.outputDir != "" {
				path, err := WriteArtifact(g, b.outputDir)
				if err != nil {
					return nil, err
				}
				b.logger.Info("wrote traversal graph", zap.String("path", path))
			}
			graphs = append(graphs, g)
		}
	}
	return graphs, nil
}

// buildGraph expands one seed with an explicit worklist. The visited set
// caps each traversal at one visit per address, bounding both the work and
// the graph on cyclic flows.
func (b *Builder) buildGraph(ctx context.Context, svc model.Service, seed model.PersistedFlow) (*Graph, error) {
	g := newGraph(seed)
	g.addFlow(seed.SrcAddr, seed.DstAddr, svc.Label)

	visited := map[string]struct{}{seed.SrcAddr: {}}
	worklist := []string{seed.DstAddr}

	for len(worklist) > 0 {
		addr := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, seen := visited[addr]; seen {
			continue
		}
		visited[addr] = struct{}{}

		for _, next := range b.services {
			flows, err := b.store.DeepSearch(ctx, next.Protocol, next.Port, addr, seed.Start, seed.End)
			if err != nil {
				return nil, err
			}
			for _, flow := range flows {
				b.logger.Debug("found child flow",
					zap.String("parent", addr),
					zap.Stringer("flow", flow),
				)
				g.addFlow(flow.SrcAddr, flow.DstAddr, next.Label)
				worklist = append(worklist, flow.DstAddr)
			}
		}
	}
	return g, nil
}

// ServicesFromConfig converts configured service triples, falling back to the
// built-in interesting set when none are configured.
func ServicesFromConfig(defs []config.ServiceDef) []model.Service {
	if len(defs) == 0 {
		return model.InterestingServices
	}
	services := make([]model.Service, 0, len(defs))
	for _, d := range defs {
		services = append(services, model.Service{Protocol: d.Protocol, Port: d.Port, Label: d.Label})
	}
	return services
}
