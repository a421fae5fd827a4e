package netflow

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/steelegbr/flowgraph/internal/model"
)

// Protocol family names. Templates learned from a v9 exporter never apply to
// an IPFIX export and vice versa.
const (
	FamilyNetflow = "netflow"
	FamilyIPFIX   = "ipfix"
)

var (
	// ErrUnknownVersion marks an export whose wire version is not 5, 9 or 10.
	// Never retried: template knowledge cannot fix an unknown version.
	ErrUnknownVersion = errors.New("unknown export version")

	// ErrTemplateNotFound marks a data set whose template has not been seen
	// yet. The packet may decode once the exporter resends its templates.
	ErrTemplateNotFound = errors.New("template not recognised")

	// ErrTruncated marks a structurally short or inconsistent packet.
	ErrTruncated = errors.New("truncated export packet")
)

const (
	v5HeaderLength    = 24
	v5RecordLength    = 48
	v9HeaderLength    = 20
	ipfixHeaderLength = 16
)

// ParsePacket decodes one export datagram against the template table,
// registering any templates it defines. When a data set references an
// unknown template the partially decoded export is returned together with
// ErrTemplateNotFound so the caller can park the packet for retry.
func ParsePacket(payload []byte, exporter string, table *TemplateTable) (*model.Export, error) {
	if len(payload) < 2 {
		return nil, ErrTruncated
	}
	switch version := binary.BigEndian.Uint16(payload); version {
	case versionNetflow5:
		return parseV5(payload)
	case versionNetflow9:
		return parseV9(payload, exporter, table)
	case versionIPFIX:
		return parseIPFIX(payload, exporter, table)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}
}

// bootMillis derives the exporter's boot time from the header: the device
// timestamp minus its uptime, in milliseconds.
func bootMillis(unixSecs, uptimeMillis uint32) int64 {
	return int64(unixSecs)*1000 - int64(uptimeMillis)
}

// parseV5 decodes a fixed-format NetFlow v5 export. No templates involved.
func parseV5(payload []byte) (*model.Export, error) {
	if len(payload) < v5HeaderLength {
		return nil, ErrTruncated
	}
	count := int(binary.BigEndian.Uint16(payload[2:]))
	uptime := binary.BigEndian.Uint32(payload[4:])
	secs := binary.BigEndian.Uint32(payload[8:])
	boot := bootMillis(secs, uptime)

	export := &model.Export{
		Family:       FamilyNetflow,
		Version:      versionNetflow5,
		Timestamp:    time.Unix(int64(secs), 0).UTC(),
		UptimeMillis: uptime,
	}

	offset := v5HeaderLength
	for i := 0; i < count; i++ {
		if offset+v5RecordLength > len(payload) {
			return nil, fmt.Errorf("%w: v5 record %d of %d", ErrTruncated, i, count)
		}
		rec := payload[offset : offset+v5RecordLength]
		export.Records = append(export.Records, model.FlowRecord{
			SrcAddr:   cloneIP(rec[0:4]),
			DstAddr:   cloneIP(rec[4:8]),
			SrcPort:   binary.BigEndian.Uint16(rec[32:]),
			DstPort:   binary.BigEndian.Uint16(rec[34:]),
			Protocol:  rec[38],
			StartTime: time.UnixMilli(boot + int64(binary.BigEndian.Uint32(rec[24:]))).UTC(),
			EndTime:   time.UnixMilli(boot + int64(binary.BigEndian.Uint32(rec[28:]))).UTC(),
		})
		offset += v5RecordLength
	}
	return export, nil
}

// parseV9 decodes a NetFlow v9 export: a header followed by template,
// options-template and data flowsets.
func parseV9(payload []byte, exporter string, table *TemplateTable) (*model.Export, error) {
	if len(payload) < v9HeaderLength {
		return nil, ErrTruncated
	}
	uptime := binary.BigEndian.Uint32(payload[4:])
	secs := binary.BigEndian.Uint32(payload[8:])
	boot := bootMillis(secs, uptime)

	export := &model.Export{
		Family:       FamilyNetflow,
		Version:      versionNetflow9,
		Timestamp:    time.Unix(int64(secs), 0).UTC(),
		UptimeMillis: uptime,
	}

	offset := v9HeaderLength
	for offset+4 <= len(payload) {
		setID := binary.BigEndian.Uint16(payload[offset:])
		setLen := int(binary.BigEndian.Uint16(payload[offset+2:]))
		if setLen < 4 || offset+setLen > len(payload) {
			return export, fmt.Errorf("%w: flowset %d length %d", ErrTruncated, setID, setLen)
		}
		body := payload[offset+4 : offset+setLen]

		switch {
		case setID == v9TemplateSetID:
			if err := parseTemplateSet(body, FamilyNetflow, exporter, table, false); err != nil {
				return export, err
			}
			export.NewTemplates = true
		case setID == v9OptionsTemplateSetID:
			if err := parseV9OptionsTemplateSet(body, exporter, table); err != nil {
				return export, err
			}
			export.NewTemplates = true
		case setID >= minDataSetID:
			records, err := parseDataSet(body, FamilyNetflow, exporter, setID, table, boot)
			if err != nil {
				return export, err
			}
			export.Records = append(export.Records, records...)
		default:
			// Reserved flowset identifiers: skip.
		}
		offset += setLen
	}
	return export, nil
}

// parseIPFIX decodes an IPFIX message. The IPFIX header carries no uptime,
// so boot time degenerates to the export timestamp; templates using the
// absolute flowStart/EndMilliseconds elements are unaffected.
func parseIPFIX(payload []byte, exporter string, table *TemplateTable) (*model.Export, error) {
	if len(payload) < ipfixHeaderLength {
		return nil, ErrTruncated
	}
	secs := binary.BigEndian.Uint32(payload[4:])
	boot := bootMillis(secs, 0)

	export := &model.Export{
		Family:    FamilyIPFIX,
		Version:   versionIPFIX,
		Timestamp: time.Unix(int64(secs), 0).UTC(),
	}

	offset := ipfixHeaderLength
	for offset+4 <= len(payload) {
		setID := binary.BigEndian.Uint16(payload[offset:])
		setLen := int(binary.BigEndian.Uint16(payload[offset+2:]))
		if setLen < 4 || offset+setLen > len(payload) {
			return export, fmt.Errorf("%w: set %d length %d", ErrTruncated, setID, setLen)
		}
		body := payload[offset+4 : offset+setLen]

		switch {
		case setID == ipfixTemplateSetID:
			if err := parseTemplateSet(body, FamilyIPFIX, exporter, table, true); err != nil {
				return export, err
			}
			export.NewTemplates = true
		case setID == ipfixOptionsSetID:
			if err := parseIPFIXOptionsTemplateSet(body, exporter, table); err != nil {
				return export, err
			}
			export.NewTemplates = true
		case setID >= minDataSetID:
			records, err := parseDataSet(body, FamilyIPFIX, exporter, setID, table, boot)
			if err != nil {
				return export, err
			}
			export.Records = append(export.Records, records...)
		default:
			// Set identifiers 4-255 are reserved: skip.
		}
		offset += setLen
	}
	return export, nil
}

// parseTemplateSet reads every template record in a template set into the
// table. IPFIX field specifiers may carry an enterprise number, which is
// skipped; enterprise-specific fields decode as opaque padding.
func parseTemplateSet(body []byte, family, exporter string, table *TemplateTable, enterprise bool) error {
	offset := 0
	for offset+4 <= len(body) {
		id := binary.BigEndian.Uint16(body[offset:])
		if id == 0 {
			break // padding
		}
		fieldCount := int(binary.BigEndian.Uint16(body[offset+2:]))
		offset += 4

		tpl := Template{ID: id}
		for i := 0; i < fieldCount; i++ {
			if offset+4 > len(body) {
				return fmt.Errorf("%w: template %d field %d", ErrTruncated, id, i)
			}
			fieldType := binary.BigEndian.Uint16(body[offset:])
			fieldLen := binary.BigEndian.Uint16(body[offset+2:])
			offset += 4
			if enterprise && fieldType&0x8000 != 0 {
				if offset+4 > len(body) {
					return fmt.Errorf("%w: template %d enterprise field %d", ErrTruncated, id, i)
				}
				offset += 4
				// An enterprise-specific element never matches the IANA
				// registry; record it as type 0 so it is only skipped over.
				fieldType = 0
			}
			if fieldLen == variableLength {
				tpl.Variable = true
			} else {
				tpl.Length += int(fieldLen)
			}
			tpl.Fields = append(tpl.Fields, TemplateField{Type: fieldType, Length: fieldLen})
		}
		table.Put(family, exporter, tpl)
	}
	return nil
}

// parseV9OptionsTemplateSet registers v9 options templates so that the data
// sets referencing them are recognised and skipped rather than parked.
func parseV9OptionsTemplateSet(body []byte, exporter string, table *TemplateTable) error {
	offset := 0
	for offset+6 <= len(body) {
		id := binary.BigEndian.Uint16(body[offset:])
		if id == 0 {
			break // padding
		}
		scopeLen := int(binary.BigEndian.Uint16(body[offset+2:]))
		optionLen := int(binary.BigEndian.Uint16(body[offset+4:]))
		offset += 6

		end := offset + scopeLen + optionLen
		if end > len(body) {
			return fmt.Errorf("%w: options template %d", ErrTruncated, id)
		}
		tpl := Template{ID: id, Options: true}
		for ; offset+4 <= end; offset += 4 {
			tpl.Length += int(binary.BigEndian.Uint16(body[offset+2:]))
		}
		offset = end
		table.Put(FamilyNetflow, exporter, tpl)
	}
	return nil
}

// parseIPFIXOptionsTemplateSet registers IPFIX options templates, again only
// so their data sets can be skipped cleanly.
func parseIPFIXOptionsTemplateSet(body []byte, exporter string, table *TemplateTable) error {
	offset := 0
	for offset+6 <= len(body) {
		id := binary.BigEndian.Uint16(body[offset:])
		if id == 0 {
			break // padding
		}
		fieldCount := int(binary.BigEndian.Uint16(body[offset+2:]))
		offset += 6 // template id, field count, scope field count

		tpl := Template{ID: id, Options: true}
		for i := 0; i < fieldCount; i++ {
			if offset+4 > len(body) {
				return fmt.Errorf("%w: options template %d field %d", ErrTruncated, id, i)
			}
			fieldType := binary.BigEndian.Uint16(body[offset:])
			fieldLen := binary.BigEndian.Uint16(body[offset+2:])
			offset += 4
			if fieldType&0x8000 != 0 {
				if offset+4 > len(body) {
					return fmt.Errorf("%w: options template %d enterprise field %d", ErrTruncated, id, i)
				}
				offset += 4
			}
			if fieldLen == variableLength {
				tpl.Variable = true
			} else {
				tpl.Length += int(fieldLen)
			}
		}
		table.Put(FamilyIPFIX, exporter, tpl)
	}
	return nil
}

// parseDataSet decodes the fixed-stride records of a data set against its
// template. Trailing bytes shorter than one record are padding.
func parseDataSet(body []byte, family, exporter string, setID uint16, table *TemplateTable, boot int64) ([]model.FlowRecord, error) {
	tpl, ok := table.Lookup(family, exporter, setID)
	if !ok {
		return nil, fmt.Errorf("%w: set %d from exporter %q", ErrTemplateNotFound, setID, exporter)
	}
	if tpl.Options || tpl.Variable || tpl.Length == 0 {
		return nil, nil
	}

	var records []model.FlowRecord
	for offset := 0; offset+tpl.Length <= len(body); offset += tpl.Length {
		if rec, ok := decodeRecord(body[offset:offset+tpl.Length], tpl, boot); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// rawRecord accumulates the registry fields found while walking one data
// record.
type rawRecord struct {
	v4Src, v4Dst net.IP
	v6Src, v6Dst net.IP

	ipVersion    uint64
	hasIPVersion bool

	srcPort, dstPort, protocol uint64

	first, last            uint64
	startMillis, endMillis uint64
	hasStartMillis         bool
	hasEndMillis           bool
}

// decodeRecord extracts one flow record. The IP version field selects which
// address pair is read; absent that, the presence of v6 addresses decides.
// Records carrying no usable address pair are discarded.
func decodeRecord(data []byte, tpl Template, boot int64) (model.FlowRecord, bool) {
	var raw rawRecord
	offset := 0
	for _, f := range tpl.Fields {
		length := int(f.Length)
		if offset+length > len(data) {
			return model.FlowRecord{}, false
		}
		value := data[offset : offset+length]
		offset += length

		switch f.Type {
		case fieldIPv4SrcAddr:
			if length == 4 {
				raw.v4Src = cloneIP(value)
			}
		case fieldIPv4DstAddr:
			if length == 4 {
				raw.v4Dst = cloneIP(value)
			}
		case fieldIPv6SrcAddr:
			if length == 16 {
				raw.v6Src = cloneIP(value)
			}
		case fieldIPv6DstAddr:
			if length == 16 {
				raw.v6Dst = cloneIP(value)
			}
		case fieldProtocol:
			raw.protocol = readUint(value)
		case fieldL4SrcPort:
			raw.srcPort = readUint(value)
		case fieldL4DstPort:
			raw.dstPort = readUint(value)
		case fieldFirstSwitched:
			raw.first = readUint(value)
		case fieldLastSwitched:
			raw.last = readUint(value)
		case fieldIPVersion:
			raw.ipVersion = readUint(value)
			raw.hasIPVersion = true
		case fieldFlowStartMillis:
			raw.startMillis = readUint(value)
			raw.hasStartMillis = true
		case fieldFlowEndMillis:
			raw.endMillis = readUint(value)
			raw.hasEndMillis = true
		}
	}

	src, dst := raw.v4Src, raw.v4Dst
	if raw.hasIPVersion {
		if raw.ipVersion == 6 {
			src, dst = raw.v6Src, raw.v6Dst
		}
	} else if src == nil && raw.v6Src != nil {
		src, dst = raw.v6Src, raw.v6Dst
	}
	if src == nil || dst == nil {
		return model.FlowRecord{}, false
	}

	start := boot + int64(raw.first)
	end := boot + int64(raw.last)
	if raw.hasStartMillis {
		start = int64(raw.startMillis)
	}
	if raw.hasEndMillis {
		end = int64(raw.endMillis)
	}

	return model.FlowRecord{
		SrcAddr:   src,
		DstAddr:   dst,
		SrcPort:   uint16(raw.srcPort),
		DstPort:   uint16(raw.dstPort),
		Protocol:  uint8(raw.protocol),
		StartTime: time.UnixMilli(start).UTC(),
		EndTime:   time.UnixMilli(end).UTC(),
	}, true
}

// readUint reads a big-endian unsigned integer of up to 8 bytes.
func readUint(value []byte) uint64 {
	var v uint64
	for _, b := range value {
		v = v<<8 | uint64(b)
	}
	return v
}

func cloneIP(value []byte) net.IP {
	ip := make(net.IP, len(value))
	copy(ip, value)
	return ip
}
