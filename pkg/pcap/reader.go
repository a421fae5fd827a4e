// Package pcap extracts UDP datagrams from capture files so recorded
// exporter traffic can be replayed against a live collector.
package pcap

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// Datagram is one UDP payload lifted out of a capture, with enough of the
// original addressing to filter on the exporter port.
type Datagram struct {
	SrcPort uint16
	DstPort uint16
	Payload []byte
}

// Reader reads UDP datagrams from a pcap file.
type Reader struct {
	handle *pcap.Handle
}

// NewReader opens the capture file at the given path.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadDatagrams sends every UDP payload in the capture to out and closes the
// channel when the file is exhausted. Non-UDP packets are skipped.
func (r *Reader) ReadDatagrams(out chan<- Datagram) {
	defer close(out)

	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp := udpLayer.(*layers.UDP)
		if len(udp.Payload) == 0 {
			continue
		}
		payload := make([]byte, len(udp.Payload))
		copy(payload, udp.Payload)
		out <- Datagram{
			SrcPort: uint16(udp.SrcPort),
			DstPort: uint16(udp.DstPort),
			Payload: payload,
		}
	}
}
