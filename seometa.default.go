package seometa

import (
	"context"
	"fmt"
)

// DefaultKind tags the variant held by a DefaultSpec.
type DefaultKind int

const (
	// DefaultNone means the slot has no fallback; absent values are omitted.
	DefaultNone DefaultKind = iota
	// DefaultLiteral returns a fixed value.
	DefaultLiteral
	// DefaultField reads a named attribute from the record.
	DefaultField
	// DefaultMethod calls a named method on the record.
	DefaultMethod
	// DefaultCallable invokes a function with the record.
	DefaultCallable
	// DefaultSlot uses the effective value of another slot of the same schema.
	DefaultSlot
)

// Default kind names, also used as YAML keys in declarations
const (
	DefaultNameNone     = "none"
	DefaultNameLiteral  = "literal"
	DefaultNameField    = "field"
	DefaultNameMethod   = "method"
	DefaultNameCallable = "callable"
	DefaultNameSlot     = "slot"
)

// String returns the string representation of the default kind
func (k DefaultKind) String() string {
	switch k {
	case DefaultLiteral:
		return DefaultNameLiteral
	case DefaultField:
		return DefaultNameField
	case DefaultMethod:
		return DefaultNameMethod
	case DefaultCallable:
		return DefaultNameCallable
	case DefaultSlot:
		return DefaultNameSlot
	default:
		return DefaultNameNone
	}
}

// CallableFunc computes a default value from a record at render time.
// rec may be nil when rendering without a record. A nil result means
// "no value".
type CallableFunc func(ctx context.Context, rec Record) (any, error)

// DefaultSpec is the fallback used when a slot has no stored value, or
// always when the slot is not editable. It is a closed sum type: build it
// with NoDefault, Literal, FieldRef, MethodRef, Callable or SlotRef.
//
// A plain string is never guessed to be an attribute name; Literal("title")
// renders the text "title" and FieldRef("title") reads the title attribute.
type DefaultSpec struct {
	kind  DefaultKind
	value any
	name  string
	fn    CallableFunc
}

// NoDefault returns the empty default.
func NoDefault() DefaultSpec {
	return DefaultSpec{kind: DefaultNone}
}

// Literal returns a default that always yields v unchanged.
func Literal(v any) DefaultSpec {
	return DefaultSpec{kind: DefaultLiteral, value: v}
}

// FieldRef returns a default read from the named record attribute.
// If the attribute is a function it is invoked.
func FieldRef(name string) DefaultSpec {
	return DefaultSpec{kind: DefaultField, name: name}
}

// MethodRef returns a default produced by the named record method.
// Lookup and invocation follow the same rules as FieldRef.
func MethodRef(name string) DefaultSpec {
	return DefaultSpec{kind: DefaultMethod, name: name}
}

// Callable returns a default computed by fn at render time.
func Callable(fn CallableFunc) DefaultSpec {
	return DefaultSpec{kind: DefaultCallable, fn: fn}
}

// SlotRef returns a default taken from the effective value of another slot.
func SlotRef(name string) DefaultSpec {
	return DefaultSpec{kind: DefaultSlot, name: name}
}

// Kind returns the variant tag.
func (d DefaultSpec) Kind() DefaultKind { return d.kind }

// Value returns the literal value (DefaultLiteral only).
func (d DefaultSpec) Value() any { return d.value }

// Name returns the referenced attribute, method or slot name.
func (d DefaultSpec) Name() string { return d.name }

// Func returns the callable (DefaultCallable only).
func (d DefaultSpec) Func() CallableFunc { return d.fn }

// IsSet reports whether a fallback is declared.
func (d DefaultSpec) IsSet() bool { return d.kind != DefaultNone }

// String describes the default for logs and help texts.
func (d DefaultSpec) String() string {
	switch d.kind {
	case DefaultLiteral:
		return fmt.Sprintf("%s(%v)", d.kind, d.value)
	case DefaultField, DefaultMethod, DefaultSlot:
		return fmt.Sprintf("%s(%s)", d.kind, d.name)
	default:
		return d.kind.String()
	}
}

// validate checks the variant is well formed.
func (d DefaultSpec) validate() string {
	switch d.kind {
	case DefaultNone, DefaultLiteral:
		return ""
	case DefaultField, DefaultMethod, DefaultSlot:
		if d.name == "" {
			return ErrMsgInvalidDefault
		}
	case DefaultCallable:
		if d.fn == nil {
			return ErrMsgInvalidDefault
		}
	default:
		return ErrMsgInvalidDefault
	}
	return ""
}

// helpNote returns the sentence appended to help texts for this default.
func (d DefaultSpec) helpNote() string {
	switch d.kind {
	case DefaultLiteral:
		return fmt.Sprintf(HelpNoteLiteral, d.value)
	case DefaultField, DefaultMethod:
		return fmt.Sprintf(HelpNoteField, d.name)
	case DefaultSlot:
		return fmt.Sprintf(HelpNoteSlot, d.name)
	case DefaultCallable:
		return HelpNoteCallable
	default:
		return ""
	}
}
