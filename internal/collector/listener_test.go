package collector

import (
	"bytes"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestListenerReceivesDatagram(t *testing.T) {
	queue := NewPacketQueue(16)
	listener, err := NewListener("127.0.0.1", 0, queue, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create listener: %v", err)
	}
	listener.Start()
	defer listener.Stop()

	conn, err := net.DialUDP("udp", nil, listener.LocalAddr())
	if err != nil {
		t.Fatalf("Failed to dial listener: %v", err)
	}
	defer conn.Close()

	payload := []byte{0x00, 0x09, 0xde, 0xad}
	if _, err := conn.Write(payload); err != nil {
		t.Fatalf("Failed to send datagram: %v", err)
	}

	p, ok := queue.Pop(2 * time.Second)
	if !ok {
		t.Fatal("No packet arrived before the timeout")
	}
	if !bytes.Equal(p.Payload, payload) {
		t.Errorf("Payload mismatch: got %x, want %x", p.Payload, payload)
	}
	if p.Sender == nil {
		t.Error("Expected sender address to be recorded")
	}
	if p.Arrival.IsZero() {
		t.Error("Expected arrival time to be recorded")
	}
}

func TestListenerStopsCleanly(t *testing.T) {
	queue := NewPacketQueue(16)
	listener, err := NewListener("127.0.0.1", 0, queue, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create listener: %v", err)
	}
	listener.Start()

	done := make(chan struct{})
	go func() {
		listener.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return within 2s")
	}
}
