package collector

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

// maxDatagramSize covers the largest export packet an exporter may send.
const maxDatagramSize = 65535

// Listener binds a UDP endpoint and enqueues every received datagram as a
// RawPacket with its arrival time. No decoding happens here.
type Listener struct {
	conn   *net.UDPConn
	queue  *PacketQueue
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewListener binds the given host and port. Port 0 binds an ephemeral port,
// which tests rely on.
func NewListener(host string, port int, queue *PacketQueue, logger *zap.Logger) (*Listener, error) {
	addr := &net.UDPAddr{IP: net.ParseIP(host), Port: port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind UDP listener on %s:%d: %w", host, port, err)
	}
	return &Listener{
		conn:   conn,
		queue:  queue,
		logger: logger.With(logging.Component("listener")),
	}, nil
}

// LocalAddr returns the bound address.
func (l *Listener) LocalAddr() *net.UDPAddr {
	return l.conn.LocalAddr().(*net.UDPAddr)
}

// Start launches the receive loop.
func (l *Listener) Start() {
	l.logger.Info("listener started", zap.Stringer("addr", l.conn.LocalAddr()))
	l.wg.Add(1)
	go l.receiveLoop()
}

// Stop closes the socket and waits for the receive loop to drain.
func (l *Listener) Stop() {
	l.conn.Close()
	l.wg.Wait()
	l.logger.Info("listener stopped", zap.Uint64("evicted", l.queue.Dropped()))
}

func (l *Listener) receiveLoop() {
	defer l.wg.Done()
	buf := make([]byte, maxDatagramSize)
	for {
		n, sender, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.logger.Warn("receive error", zap.Error(err))
			continue
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		l.queue.Push(model.RawPacket{
			Arrival: time.Now(),
			Sender:  sender,
			Payload: payload,
		})
		l.logger.Debug("received datagram",
			zap.Int("bytes", n),
			zap.Stringer("sender", sender),
		)
	}
}
