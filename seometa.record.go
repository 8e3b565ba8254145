package seometa

import (
	"github.com/itsatony/go-seometa/internal"
)

// Record is the read-only view the engine has of a metadata record.
// The engine never mutates a record.
type Record interface {
	// StoredValue returns the value stored for a slot. ok is false when the
	// record has nothing stored for it.
	StoredValue(slot string) (value string, ok bool)

	// Attribute returns a named attribute for FieldRef/MethodRef defaults.
	// Function-valued attributes are invoked by the resolver.
	Attribute(name string) (value any, ok bool)

	// SiteID returns the site scope of the record, empty when unscoped.
	SiteID() string
}

// MapRecord is a Record backed by plain maps.
type MapRecord struct {
	Values     map[string]string
	Attributes map[string]any
	Site       string
}

// NewMapRecord creates a MapRecord with the given stored values.
func NewMapRecord(values map[string]string) *MapRecord {
	return &MapRecord{
		Values:     values,
		Attributes: make(map[string]any),
	}
}

// WithAttribute sets an attribute and returns the record for chaining.
func (r *MapRecord) WithAttribute(name string, value any) *MapRecord {
	if r.Attributes == nil {
		r.Attributes = make(map[string]any)
	}
	r.Attributes[name] = value
	return r
}

// StoredValue implements Record.
func (r *MapRecord) StoredValue(slot string) (string, bool) {
	v, ok := r.Values[slot]
	return v, ok
}

// Attribute implements Record.
func (r *MapRecord) Attribute(name string) (any, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

// SiteID implements Record.
func (r *MapRecord) SiteID() string { return r.Site }

// ObjectRecord exposes the exported fields and methods of an arbitrary Go
// value as attributes. Names are matched exactly or in CamelCase form, so
// FieldRef("page_title") finds a PageTitle field or method.
type ObjectRecord struct {
	Object any
	Values map[string]string
	Site   string
}

// StoredValue implements Record.
func (r *ObjectRecord) StoredValue(slot string) (string, bool) {
	v, ok := r.Values[slot]
	return v, ok
}

// Attribute implements Record.
func (r *ObjectRecord) Attribute(name string) (any, bool) {
	return internal.LookupAttribute(r.Object, name)
}

// SiteID implements Record.
func (r *ObjectRecord) SiteID() string { return r.Site }

// ChainRecord combines records in priority order, e.g. a path-specific
// record, then one linked to the page object, then a per-model record. The
// first non-empty stored value wins; attributes come from the first record
// that has them.
type ChainRecord []Record

// StoredValue implements Record.
func (c ChainRecord) StoredValue(slot string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if v, ok := r.StoredValue(slot); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Attribute implements Record.
func (c ChainRecord) Attribute(name string) (any, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if v, ok := r.Attribute(name); ok {
			return v, true
		}
	}
	return nil, false
}

// SiteID implements Record.
func (c ChainRecord) SiteID() string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if site := r.SiteID(); site != "" {
			return site
		}
	}
	return ""
}
