package collector

import (
	"sync/atomic"
	"time"

	"github.com/steelegbr/flowgraph/internal/model"
)

// PacketQueue is a bounded FIFO of raw packets decoupling the network path
// from decoding. When full, the oldest packet is evicted so the listener
// never blocks on the network path.
type PacketQueue struct {
	ch      chan model.RawPacket
	dropped atomic.Uint64
}

// NewPacketQueue creates a queue with the given capacity.
func NewPacketQueue(capacity int) *PacketQueue {
	return &PacketQueue{ch: make(chan model.RawPacket, capacity)}
}

// Push enqueues a packet, evicting the oldest entry if the queue is full.
func (q *PacketQueue) Push(p model.RawPacket) {
	for {
		select {
		case q.ch <- p:
			return
		default:
		}
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
	}
}

// Pop removes and returns the oldest packet, waiting up to timeout. The
// second return value reports whether a packet was received before the
// timeout elapsed.
func (q *PacketQueue) Pop(timeout time.Duration) (model.RawPacket, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p := <-q.ch:
		return p, true
	case <-timer.C:
		return model.RawPacket{}, false
	}
}

// Len returns the number of packets currently queued.
func (q *PacketQueue) Len() int { return len(q.ch) }

// Dropped returns the number of packets evicted under overload.
func (q *PacketQueue) Dropped() uint64 { return q.dropped.Load() }
