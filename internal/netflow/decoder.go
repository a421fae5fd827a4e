package netflow

import (
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/collector"
	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

// pollTimeout bounds each queue wait so the loop can expire parked packets
// and notice shutdown even when no traffic arrives.
const pollTimeout = 500 * time.Millisecond

// pendingPacket is a packet parked until its template arrives.
type pendingPacket struct {
	packet   model.RawPacket
	family   string
	exporter string
}

// Decoder is the single consumer of the packet queue. It owns the template
// table outright: no other goroutine may touch it. Packets whose template is
// unknown are parked and retried whenever the same exporter defines new
// templates; parked packets older than the retention window are dropped.
type Decoder struct {
	queue     *collector.PacketQueue
	table     *TemplateTable
	out       chan model.FlowRecord
	pending   []pendingPacket
	retention time.Duration
	limit     int
	logger    *zap.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewDecoder creates a decoder reading from queue and writing decoded flow
// records to the channel returned by Records.
func NewDecoder(queue *collector.PacketQueue, table *TemplateTable, cfg config.DecoderConfig, logger *zap.Logger) *Decoder {
	return &Decoder{
		queue:     queue,
		table:     table,
		out:       make(chan model.FlowRecord, cfg.RecordQueueSize),
		retention: time.Duration(cfg.PendingRetention) * time.Second,
		limit:     cfg.PendingLimit,
		logger:    logger.With(logging.Component("decoder")),
		done:      make(chan struct{}),
	}
}

// Records returns the channel of decoded flow records. Closed by Stop.
func (d *Decoder) Records() <-chan model.FlowRecord { return d.out }

// PendingCount returns the number of packets awaiting a template.
func (d *Decoder) PendingCount() int { return len(d.pending) }

// Start launches the consume loop.
func (d *Decoder) Start() {
	d.wg.Add(1)
	go d.consumeLoop()
	d.logger.Info("decoder started")
}

// Stop terminates the consume loop and closes the records channel.
func (d *Decoder) Stop() {
	close(d.done)
	d.wg.Wait()
	close(d.out)
	d.logger.Info("decoder stopped", zap.Int("pending_abandoned", len(d.pending)))
}

func (d *Decoder) consumeLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		default:
		}
		pkt, ok := d.queue.Pop(pollTimeout)
		now := time.Now()
		d.expirePending(now)
		if !ok {
			continue
		}
		d.process(pkt, now)
	}
}

// process attempts a decode and routes the packet to its terminal state:
// emitted, parked awaiting a template, or dropped.
func (d *Decoder) process(pkt model.RawPacket, now time.Time) {
	exporter := exporterKey(pkt.Sender)
	export, err := ParsePacket(pkt.Payload, exporter, d.table)
	switch {
	case errors.Is(err, ErrUnknownVersion):
		d.logger.Error("dropping packet with unknown export version", zap.Error(err))
	case errors.Is(err, ErrTemplateNotFound):
		if now.Sub(pkt.Arrival) > d.retention {
			d.logger.Error("dropping timed out packet",
				zap.String("exporter", exporter),
				zap.Time("arrival", pkt.Arrival),
			)
			return
		}
		d.park(pendingPacket{packet: pkt, family: export.Family, exporter: exporter})
	case err != nil:
		d.logger.Error("dropping malformed packet", zap.Error(err))
	default:
		d.emit(export.Records)
		if export.NewTemplates {
			d.retryPending(export.Family, exporter, now)
		}
	}
}

// park holds a packet for later retry, evicting the oldest entry when the
// pending set is full.
func (d *Decoder) park(p pendingPacket) {
	if len(d.pending) >= d.limit {
		evicted := d.pending[0]
		d.pending = d.pending[1:]
		d.logger.Warn("pending set full, evicting oldest packet",
			zap.String("exporter", evicted.exporter),
			zap.Time("arrival", evicted.packet.Arrival),
		)
	}
	d.pending = append(d.pending, p)
	d.logger.Warn("parking packet until templates update",
		zap.String("family", p.family),
		zap.String("exporter", p.exporter),
		zap.Int("pending", len(d.pending)),
	)
}

// retryPending re-attempts every parked packet from the exporter and family
// that just delivered new templates. Packets that still miss their template
// stay parked; anything past the retention window is dropped.
func (d *Decoder) retryPending(family, exporter string, now time.Time) {
	if len(d.pending) == 0 {
		return
	}
	kept := d.pending[:0]
	decoded := 0
	for _, p := range d.pending {
		if p.family != family || p.exporter != exporter {
			kept = append(kept, p)
			continue
		}
		if now.Sub(p.packet.Arrival) > d.retention {
			d.logger.Error("dropping timed out packet",
				zap.String("exporter", p.exporter),
				zap.Time("arrival", p.packet.Arrival),
			)
			continue
		}
		export, err := ParsePacket(p.packet.Payload, p.exporter, d.table)
		if errors.Is(err, ErrTemplateNotFound) {
			kept = append(kept, p)
			continue
		}
		if err != nil {
			d.logger.Error("dropping malformed packet on retry", zap.Error(err))
			continue
		}
		decoded++
		d.emit(export.Records)
	}
	d.pending = kept
	if decoded > 0 {
		d.logger.Info("new templates received, reprocessed parked packets",
			zap.Int("decoded", decoded),
			zap.Int("still_pending", len(d.pending)),
		)
	}
}

// expirePending drops parked packets past the retention window. Invoked on
// every loop iteration rather than a timer; the effect is that nothing older
// than the window is ever decoded.
func (d *Decoder) expirePending(now time.Time) {
	if len(d.pending) == 0 {
		return
	}
	kept := d.pending[:0]
	for _, p := range d.pending {
		if now.Sub(p.packet.Arrival) > d.retention {
			d.logger.Error("dropping timed out packet",
				zap.String("exporter", p.exporter),
				zap.Time("arrival", p.packet.Arrival),
			)
			continue
		}
		kept = append(kept, p)
	}
	d.pending = kept
}

func (d *Decoder) emit(records []model.FlowRecord) {
	for _, rec := range records {
		select {
		case d.out <- rec:
		case <-d.done:
			return
		}
	}
}

func exporterKey(sender *net.UDPAddr) string {
	if sender == nil {
		return ""
	}
	return sender.IP.String()
}
