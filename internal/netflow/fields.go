package netflow

// Field type numbers shared by the NetFlow v9 registry and the IANA IPFIX
// information elements. Only the fields needed to build a flow record are
// decoded; everything else is skipped by length.
const (
	fieldProtocol      uint16 = 4
	fieldL4SrcPort     uint16 = 7
	fieldIPv4SrcAddr   uint16 = 8
	fieldL4DstPort     uint16 = 11
	fieldIPv4DstAddr   uint16 = 12
	fieldLastSwitched  uint16 = 21
	fieldFirstSwitched uint16 = 22
	fieldIPv6SrcAddr   uint16 = 27
	fieldIPv6DstAddr   uint16 = 28
	fieldIPVersion     uint16 = 60

	// IPFIX absolute timestamps, preferred over the switched offsets when a
	// template carries them.
	fieldFlowStartMillis uint16 = 152
	fieldFlowEndMillis   uint16 = 153
)

// Set identifiers.
const (
	v9TemplateSetID        uint16 = 0
	v9OptionsTemplateSetID uint16 = 1
	ipfixTemplateSetID     uint16 = 2
	ipfixOptionsSetID      uint16 = 3
	minDataSetID           uint16 = 256
)

// Wire versions.
const (
	versionNetflow5 uint16 = 5
	versionNetflow9 uint16 = 9
	versionIPFIX    uint16 = 10
)

// variableLength marks an IPFIX field whose length is encoded per record.
const variableLength uint16 = 0xFFFF
