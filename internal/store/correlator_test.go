package store

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/model"
)

// memoryStore is an in-memory Store used to exercise the correlator without
// a database.
type memoryStore struct {
	mu    sync.Mutex
	flows []model.PersistedFlow
}

func (m *memoryStore) FindBidirectional(ctx context.Context, rec model.FlowRecord) ([]model.PersistedFlow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []model.PersistedFlow
	for _, f := range m.flows {
		forward := f.SrcAddr == rec.SrcAddr.String() && f.DstAddr == rec.DstAddr.String() &&
			f.SrcPort == rec.SrcPort && f.DstPort == rec.DstPort
		reverse := f.SrcAddr == rec.DstAddr.String() && f.DstAddr == rec.SrcAddr.String() &&
			f.SrcPort == rec.DstPort && f.DstPort == rec.SrcPort
		if (forward || reverse) && f.Protocol == rec.Protocol && f.Start.Equal(rec.StartTime) {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

func (m *memoryStore) AdvanceEnd(ctx context.Context, id uuid.UUID, end time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.flows {
		if m.flows[i].ID == id {
			m.flows[i].End = end
		}
	}
	return nil
}

func (m *memoryStore) Insert(ctx context.Context, rec model.FlowRecord) (model.PersistedFlow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	flow := model.PersistedFlow{
		ID:       uuid.New(),
		SrcAddr:  rec.SrcAddr.String(),
		DstAddr:  rec.DstAddr.String(),
		SrcPort:  rec.SrcPort,
		DstPort:  rec.DstPort,
		Protocol: rec.Protocol,
		Start:    rec.StartTime,
		End:      rec.EndTime,
	}
	m.flows = append(m.flows, flow)
	return flow, nil
}

func (m *memoryStore) WideSearch(ctx context.Context, protocol uint8, port uint16) ([]model.PersistedFlow, error) {
	return nil, nil
}

func (m *memoryStore) DeepSearch(ctx context.Context, protocol uint8, port uint16, srcAddr string, notBefore, notAfter time.Time) ([]model.PersistedFlow, error) {
	return nil, nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) snapshot() []model.PersistedFlow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.PersistedFlow{}, m.flows...)
}

// recordingSink captures every published flow.
type recordingSink struct {
	mu    sync.Mutex
	flows []model.PersistedFlow
}

func (s *recordingSink) Publish(flow model.PersistedFlow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows = append(s.flows, flow)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

func testRecord(src, dst string, srcPort, dstPort uint16, start, end time.Time) model.FlowRecord {
	return model.FlowRecord{
		SrcAddr:   net.ParseIP(src),
		DstAddr:   net.ParseIP(dst),
		SrcPort:   srcPort,
		DstPort:   dstPort,
		Protocol:  6,
		StartTime: start,
		EndTime:   end,
	}
}

func runCorrelator(t *testing.T, store model.Store, sink FlowSink, records ...model.FlowRecord) {
	t.Helper()
	in := make(chan model.FlowRecord, len(records))
	for _, rec := range records {
		in <- rec
	}
	close(in)

	c := NewCorrelator(store, in, sink, zap.NewNop())
	c.Start()
	c.Stop()
}

func TestCorrelatorInsertsNewFlow(t *testing.T) {
	ms := &memoryStore{}
	start := time.Unix(1700000000, 0).UTC()

	runCorrelator(t, ms, nil,
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(time.Second)))

	flows := ms.snapshot()
	if len(flows) != 1 {
		t.Fatalf("Expected 1 persisted flow, got %d", len(flows))
	}
	if flows[0].SrcAddr != "10.0.0.1" || flows[0].DstPort != 22 {
		t.Errorf("Unexpected flow %v", flows[0])
	}
}

func TestCorrelatorMergesReverseReport(t *testing.T) {
	ms := &memoryStore{}
	start := time.Unix(1700000000, 0).UTC()

	// The same conversation reported from both directions collapses into one
	// row whose end time is the later of the two.
	runCorrelator(t, ms, nil,
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(time.Second)),
		testRecord("10.0.0.2", "10.0.0.1", 22, 50000, start, start.Add(5*time.Second)))

	flows := ms.snapshot()
	if len(flows) != 1 {
		t.Fatalf("Expected 1 merged flow, got %d", len(flows))
	}
	if !flows[0].End.Equal(start.Add(5 * time.Second)) {
		t.Errorf("Expected end advanced to +5s, got %v", flows[0].End)
	}
}

func TestCorrelatorEndTimeNeverMovesBackwards(t *testing.T) {
	ms := &memoryStore{}
	start := time.Unix(1700000000, 0).UTC()

	runCorrelator(t, ms, nil,
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(10*time.Second)),
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(2*time.Second)))

	flows := ms.snapshot()
	if len(flows) != 1 {
		t.Fatalf("Expected 1 flow, got %d", len(flows))
	}
	if !flows[0].End.Equal(start.Add(10 * time.Second)) {
		t.Errorf("End time moved backwards: %v", flows[0].End)
	}
}

func TestCorrelatorDifferentStartIsNewFlow(t *testing.T) {
	ms := &memoryStore{}
	start := time.Unix(1700000000, 0).UTC()

	// Same five-tuple but a different start time is a separate conversation.
	runCorrelator(t, ms, nil,
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(time.Second)),
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start.Add(time.Minute), start.Add(61*time.Second)))

	if flows := ms.snapshot(); len(flows) != 2 {
		t.Fatalf("Expected 2 flows, got %d", len(flows))
	}
}

func TestCorrelatorPublishesToSink(t *testing.T) {
	ms := &memoryStore{}
	sink := &recordingSink{}
	start := time.Unix(1700000000, 0).UTC()

	runCorrelator(t, ms, sink,
		testRecord("10.0.0.1", "10.0.0.2", 50000, 22, start, start.Add(time.Second)),
		testRecord("10.0.0.2", "10.0.0.1", 22, 50000, start, start.Add(2*time.Second)))

	// One publish for the insert, one for the merge.
	if sink.count() != 2 {
		t.Errorf("Expected 2 published flows, got %d", sink.count())
	}
}
