package seometa

import (
	"maps"
	"slices"
)

// FormField describes one editable slot for an admin form. Fields are
// produced in declaration order.
type FormField struct {
	Name      string
	Label     string
	Kind      SlotKind
	HelpText  string
	MaxLength int
	Group     string

	// Multiline is true for unbounded storage, which wants a textarea
	// rather than a single-line input.
	Multiline bool
}

// FormFields returns the admin form descriptors of the schema. Slots that
// are not editable are left out.
func (s *Schema) FormFields() []FormField {
	slots := s.Slots()
	fields := make([]FormField, 0, len(slots))
	for _, slot := range slots {
		if !slot.Editable() {
			continue
		}
		fields = append(fields, FormField{
			Name:      slot.Name(),
			Label:     slot.VerboseName(),
			Kind:      slot.Kind(),
			HelpText:  slot.HelpText(),
			MaxLength: slot.MaxLength(),
			Group:     slot.Group(),
			Multiline: slot.Storage() == StorageUnbounded,
		})
	}
	return fields
}

// ValidateValues checks stored values against the schema: every key must
// name an editable slot and fit its max length. The first violation is
// returned; errors wrap ErrInvalidValue.
func (s *Schema) ValidateValues(values map[string]string) error {
	for _, slot := range s.Slots() {
		v, ok := values[slot.Name()]
		if !ok {
			continue
		}
		if err := slot.CheckLength(v); err != nil {
			return err
		}
	}
	names := slices.Sorted(maps.Keys(values))
	for _, name := range names {
		slot, ok := s.Slot(name)
		if !ok {
			return NewInvalidValueError(ErrMsgUnknownValue, s.name, name)
		}
		if !slot.Editable() {
			return NewInvalidValueError(ErrMsgValueNotEditable, s.name, name)
		}
	}
	return nil
}
