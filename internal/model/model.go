package model

import (
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

// RawPacket is a single datagram as received from an exporter, before any
// decoding. Immutable once enqueued.
type RawPacket struct {
	Arrival time.Time
	Sender  *net.UDPAddr
	Payload []byte
}

// FlowRecord is one unidirectional traffic summary decoded from an export.
type FlowRecord struct {
	SrcAddr   net.IP
	DstAddr   net.IP
	SrcPort   uint16
	DstPort   uint16
	Protocol  uint8
	StartTime time.Time
	EndTime   time.Time
}

func (r FlowRecord) String() string {
	return fmt.Sprintf("%s:%d -> %s:%d [%d]", r.SrcAddr, r.SrcPort, r.DstAddr, r.DstPort, r.Protocol)
}

// Export is one decoded telemetry packet: a header plus zero or more flow
// records. Derived per packet and never persisted.
type Export struct {
	Family       string
	Version      uint16
	Timestamp    time.Time
	UptimeMillis uint32
	Records      []FlowRecord
	NewTemplates bool
}

// PersistedFlow is a FlowRecord with its store identity. Addresses are held
// in their canonical text form, matching the flows table columns.
type PersistedFlow struct {
	ID       uuid.UUID
	SrcAddr  string
	DstAddr  string
	SrcPort  uint16
	DstPort  uint16
	Protocol uint8
	Start    time.Time
	End      time.Time
}

func (f PersistedFlow) String() string {
	return fmt.Sprintf("%s:%d -> %s:%d [%d]", f.SrcAddr, f.SrcPort, f.DstAddr, f.DstPort, f.Protocol)
}

// Service is an interesting (protocol, port, label) triple used to seed and
// expand lateral-movement traversals.
type Service struct {
	Protocol uint8
	Port     uint16
	Label    string
}

// InterestingServices is the default set of administrative protocols the
// graph builder searches for.
var InterestingServices = []Service{
	{Protocol: 6, Port: 22, Label: "SSH"},
	{Protocol: 6, Port: 3389, Label: "RDP (TCP)"},
	{Protocol: 17, Port: 3389, Label: "RDP (UDP)"},
	{Protocol: 6, Port: 5985, Label: "WinRM"},
	{Protocol: 6, Port: 5986, Label: "WinRM (TLS)"},
}
