package seometa

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaDeclaration is the YAML form of a schema:
//
//	name: site
//	slots:
//	  - name: title
//	    kind: tag
//	    head: true
//	    max_length: 68
//	    default: {literal: My Site}
//	  - name: description
//	    kind: metatag
//	    default: {field: summary}
type SchemaDeclaration struct {
	Name  string            `yaml:"name"`
	Slots []SlotDeclaration `yaml:"slots"`
}

// SlotDeclaration is the YAML form of one slot. Unset fields keep the
// NewSlot defaults.
type SlotDeclaration struct {
	Name         string              `yaml:"name"`
	Kind         string              `yaml:"kind"`
	DisplayName  string              `yaml:"display_name,omitempty"`
	Head         bool                `yaml:"head,omitempty"`
	Editable     *bool               `yaml:"editable,omitempty"`
	ValidTags    *[]string           `yaml:"valid_tags,omitempty"`
	Unrestricted bool                `yaml:"unrestricted,omitempty"`
	MaxLength    int                 `yaml:"max_length,omitempty"`
	Storage      string              `yaml:"storage,omitempty"`
	Group        string              `yaml:"group,omitempty"`
	VerboseName  string              `yaml:"verbose_name,omitempty"`
	HelpText     string              `yaml:"help_text,omitempty"`
	Default      *DefaultDeclaration `yaml:"default,omitempty"`
}

// DefaultDeclaration sets exactly one of its fields.
type DefaultDeclaration struct {
	Literal  any    `yaml:"literal,omitempty"`
	Field    string `yaml:"field,omitempty"`
	Method   string `yaml:"method,omitempty"`
	Callable string `yaml:"callable,omitempty"`
	Slot     string `yaml:"slot,omitempty"`
}

// RecordDeclaration is the YAML form of a MapRecord.
type RecordDeclaration struct {
	Site       string            `yaml:"site,omitempty"`
	Values     map[string]string `yaml:"values,omitempty"`
	Attributes map[string]any    `yaml:"attributes,omitempty"`
}

// ParseSchemaYAML builds and validates a schema from a YAML declaration.
// Unknown keys are rejected. Named callables come from WithCallables.
func ParseSchemaYAML(data []byte, opts ...SchemaOption) (*Schema, error) {
	return parseSchemaYAML(data, "", opts...)
}

// LoadSchemaFile reads a YAML schema declaration from disk.
func LoadSchemaFile(path string, opts ...SchemaOption) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDeclarationError(path, err)
	}
	return parseSchemaYAML(data, path, opts...)
}

func parseSchemaYAML(data []byte, source string, opts ...SchemaOption) (*Schema, error) {
	var decl SchemaDeclaration
	if err := decodeStrict(data, &decl); err != nil {
		return nil, NewDeclarationError(source, err)
	}
	return decl.Build(opts...)
}

// Build turns the declaration into a validated schema.
func (d *SchemaDeclaration) Build(opts ...SchemaOption) (*Schema, error) {
	schema, err := NewSchema(d.Name, opts...)
	if err != nil {
		return nil, err
	}
	for _, sd := range d.Slots {
		slot, err := sd.build(schema)
		if err != nil {
			return nil, err
		}
		if err := schema.Register(slot); err != nil {
			return nil, err
		}
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

func (d *SlotDeclaration) build(schema *Schema) (*SlotSpec, error) {
	kind, ok := ParseSlotKind(d.Kind)
	if !ok {
		return nil, NewConfigurationError(ErrMsgInvalidKind, schema.Name(), d.Name)
	}

	opts := []SlotOption{
		WithHeadOnly(d.Head),
		WithMaxLength(d.MaxLength),
		WithGroup(d.Group),
		WithVerboseName(d.VerboseName),
		WithHelpText(d.HelpText),
	}
	if d.DisplayName != "" {
		opts = append(opts, WithDisplayName(d.DisplayName))
	}
	if d.Editable != nil {
		opts = append(opts, WithEditable(*d.Editable))
	}
	switch {
	case d.Unrestricted:
		opts = append(opts, WithUnrestrictedTags())
	case d.ValidTags != nil:
		opts = append(opts, WithValidTags(*d.ValidTags...))
	}
	if d.Storage != "" {
		storage, ok := parseStorageKind(d.Storage)
		if !ok {
			return nil, NewConfigurationError(ErrMsgInvalidStorage, schema.Name(), d.Name)
		}
		opts = append(opts, WithStorage(storage))
	}
	if d.Default != nil {
		def, err := d.Default.build(schema, d.Name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDefault(def))
	}

	slot, err := NewSlot(kind, d.Name, opts...)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (d *DefaultDeclaration) build(schema *Schema, slot string) (DefaultSpec, error) {
	var specs []DefaultSpec
	if d.Literal != nil {
		specs = append(specs, Literal(d.Literal))
	}
	if d.Field != "" {
		specs = append(specs, FieldRef(d.Field))
	}
	if d.Method != "" {
		specs = append(specs, MethodRef(d.Method))
	}
	if d.Slot != "" {
		specs = append(specs, SlotRef(d.Slot))
	}
	if d.Callable != "" {
		fn, ok := schema.callable(d.Callable)
		if !ok {
			return DefaultSpec{}, NewConfigurationError(ErrMsgUnknownCallable, schema.Name(), slot)
		}
		specs = append(specs, Callable(fn))
	}

	if len(specs) != 1 {
		return DefaultSpec{}, NewConfigurationError(ErrMsgAmbiguousDefault, schema.Name(), slot)
	}
	return specs[0], nil
}

func parseStorageKind(name string) (StorageKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StorageNameBounded:
		return StorageBounded, true
	case StorageNameUnbounded:
		return StorageUnbounded, true
	default:
		return 0, false
	}
}

// ParseRecordYAML reads a record declaration into a MapRecord.
func ParseRecordYAML(data []byte) (*MapRecord, error) {
	return parseRecordYAML(data, "")
}

func parseRecordYAML(data []byte, source string) (*MapRecord, error) {
	var decl RecordDeclaration
	if err := decodeStrict(data, &decl); err != nil {
		return nil, NewDeclarationError(source, err)
	}
	rec := NewMapRecord(decl.Values)
	rec.Site = decl.Site
	for name, value := range decl.Attributes {
		rec.WithAttribute(name, value)
	}
	return rec, nil
}

// LoadRecordFile reads a YAML record declaration from disk.
func LoadRecordFile(path string) (*MapRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDeclarationError(path, err)
	}
	return parseRecordYAML(data, path)
}

// decodeStrict decodes a single YAML document, rejecting unknown keys.
// An empty document decodes to the zero value.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
