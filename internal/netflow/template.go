package netflow

// TemplateField is one (type, length) entry in a template record.
type TemplateField struct {
	Type   uint16
	Length uint16
}

// Template describes the field layout of subsequent data records.
type Template struct {
	ID     uint16
	Fields []TemplateField
	// Length is the fixed record stride in bytes, the sum of field lengths.
	Length int
	// Options marks an options template; data records using it carry
	// exporter metadata, not flows, and are skipped.
	Options bool
	// Variable marks a template with at least one variable-length field.
	// Such data sets cannot be decoded with a fixed stride and are skipped.
	Variable bool
}

type templateKey struct {
	family   string
	exporter string
	id       uint16
}

// TemplateTable holds every template learned so far, keyed by protocol
// family, exporter address and template identifier so two devices reusing an
// identifier never collide. The table is owned by a single decoder goroutine
// and is deliberately unsynchronized.
type TemplateTable struct {
	templates map[templateKey]Template
}

// NewTemplateTable creates an empty table.
func NewTemplateTable() *TemplateTable {
	return &TemplateTable{templates: make(map[templateKey]Template)}
}

// Put records a template definition, replacing any previous layout for the
// same identifier.
func (t *TemplateTable) Put(family, exporter string, tpl Template) {
	t.templates[templateKey{family: family, exporter: exporter, id: tpl.ID}] = tpl
}

// Lookup returns the template for an identifier, if known.
func (t *TemplateTable) Lookup(family, exporter string, id uint16) (Template, bool) {
	tpl, ok := t.templates[templateKey{family: family, exporter: exporter, id: id}]
	return tpl, ok
}

// Len returns the number of templates learned.
func (t *TemplateTable) Len() int { return len(t.templates) }
