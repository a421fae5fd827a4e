package netflow

import (
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/collector"
	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/model"
)

func testDecoder(t *testing.T) *Decoder {
	t.Helper()
	cfg := config.DecoderConfig{
		PendingRetention: 3600,
		PendingLimit:     4,
		RecordQueueSize:  64,
	}
	return NewDecoder(collector.NewPacketQueue(16), NewTemplateTable(), cfg, zap.NewNop())
}

func rawPacket(payload []byte, exporter string, arrival time.Time) model.RawPacket {
	return model.RawPacket{
		Arrival: arrival,
		Sender:  &net.UDPAddr{IP: net.ParseIP(exporter), Port: 2055},
		Payload: payload,
	}
}

func drainRecords(d *Decoder) []model.FlowRecord {
	var records []model.FlowRecord
	for {
		select {
		case rec := <-d.out:
			records = append(records, rec)
		default:
			return records
		}
	}
}

func dataPacket() []byte {
	packet := v9Header(1, 1000, 1700000000)
	return append(packet, v9Flowset(256, v4Record(
		net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.2"), 50000, 22, 6, 100, 200))...)
}

func templatePacket() []byte {
	packet := v9Header(1, 1000, 1700000000)
	return append(packet, v9Flowset(v9TemplateSetID, v4Template(256))...)
}

func TestDecoderParksUntilTemplateArrives(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	d.process(rawPacket(dataPacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 1 {
		t.Fatalf("Expected 1 pending packet, got %d", d.PendingCount())
	}
	if records := drainRecords(d); len(records) != 0 {
		t.Fatalf("Expected no records before template, got %d", len(records))
	}

	d.process(rawPacket(templatePacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 0 {
		t.Errorf("Expected pending set drained after template, got %d", d.PendingCount())
	}
	records := drainRecords(d)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after retry, got %d", len(records))
	}
	if records[0].DstPort != 22 {
		t.Errorf("Expected dst port 22, got %d", records[0].DstPort)
	}
}

func TestDecoderRetryScopedToExporter(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	d.process(rawPacket(dataPacket(), "192.0.2.1", now), now)
	d.process(rawPacket(dataPacket(), "192.0.2.9", now), now)
	if d.PendingCount() != 2 {
		t.Fatalf("Expected 2 pending packets, got %d", d.PendingCount())
	}

	// Templates from one exporter must not release the other's packets.
	d.process(rawPacket(templatePacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 1 {
		t.Errorf("Expected 1 packet still pending, got %d", d.PendingCount())
	}
	if records := drainRecords(d); len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}

func TestDecoderExpiresPending(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	d.process(rawPacket(dataPacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 1 {
		t.Fatalf("Expected 1 pending packet, got %d", d.PendingCount())
	}

	d.expirePending(now.Add(d.retention + time.Second))
	if d.PendingCount() != 0 {
		t.Errorf("Expected pending set empty after retention, got %d", d.PendingCount())
	}
}

func TestDecoderRetrySweepDropsExpired(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	d.process(rawPacket(dataPacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 1 {
		t.Fatalf("Expected 1 pending packet, got %d", d.PendingCount())
	}
	// Age the parked packet past the retention window, then deliver its
	// template. The sweep must drop it rather than decode it late.
	d.pending[0].packet.Arrival = now.Add(-d.retention - time.Second)

	d.process(rawPacket(templatePacket(), "192.0.2.1", now), now)
	if d.PendingCount() != 0 {
		t.Errorf("Expected expired packet removed, got %d pending", d.PendingCount())
	}
	if records := drainRecords(d); len(records) != 0 {
		t.Errorf("Expired packet must never decode, got %d records", len(records))
	}
}

func TestDecoderDropsStalePacketImmediately(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	// A packet that has already outlived the retention window is never parked.
	stale := rawPacket(dataPacket(), "192.0.2.1", now.Add(-d.retention-time.Second))
	d.process(stale, now)
	if d.PendingCount() != 0 {
		t.Errorf("Expected stale packet dropped, got %d pending", d.PendingCount())
	}
}

func TestDecoderDropsUnknownVersion(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	d.process(rawPacket(be16(nil, 7, 0), "192.0.2.1", now), now)
	if d.PendingCount() != 0 {
		t.Errorf("Unknown version must not be parked, got %d pending", d.PendingCount())
	}
	if records := drainRecords(d); len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestDecoderPendingLimitEvictsOldest(t *testing.T) {
	d := testDecoder(t)
	now := time.Now()

	for i := 0; i < d.limit+2; i++ {
		d.process(rawPacket(dataPacket(), "192.0.2.1", now), now)
	}
	if d.PendingCount() != d.limit {
		t.Errorf("Expected pending capped at %d, got %d", d.limit, d.PendingCount())
	}
}

func TestDecoderEndToEnd(t *testing.T) {
	queue := collector.NewPacketQueue(16)
	cfg := config.DecoderConfig{PendingRetention: 3600, PendingLimit: 8, RecordQueueSize: 16}
	d := NewDecoder(queue, NewTemplateTable(), cfg, zap.NewNop())
	d.Start()

	now := time.Now()
	queue.Push(rawPacket(dataPacket(), "192.0.2.1", now))
	queue.Push(rawPacket(templatePacket(), "192.0.2.1", now))

	select {
	case rec := <-d.Records():
		if rec.SrcAddr.String() != "10.0.0.1" {
			t.Errorf("Unexpected src addr %s", rec.SrcAddr)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("No record decoded within 3s")
	}

	d.Stop()
	if _, ok := <-d.Records(); ok {
		// Drain whatever was buffered; the channel must eventually close.
		for range d.Records() {
		}
	}
}
