package seometa

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/itsatony/go-seometa/internal"
)

// SlotKind identifies how a slot is rendered.
type SlotKind int

const (
	// KindTag renders <display_name>escaped value</display_name>.
	KindTag SlotKind = iota + 1
	// KindMetaTag renders <meta name="display_name" content="escaped value" />.
	KindMetaTag
	// KindKeywordTag is a meta tag whose value is a normalized keyword list.
	KindKeywordTag
	// KindRaw emits sanitized markup verbatim.
	KindRaw
)

// String returns the string representation of the slot kind
func (k SlotKind) String() string {
	switch k {
	case KindTag:
		return KindNameTag
	case KindMetaTag:
		return KindNameMetaTag
	case KindKeywordTag:
		return KindNameKeywordTag
	case KindRaw:
		return KindNameRaw
	default:
		return KindNameUnknown
	}
}

// ParseSlotKind parses a kind name (case-insensitive).
func ParseSlotKind(name string) (SlotKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case KindNameTag:
		return KindTag, true
	case KindNameMetaTag, "meta":
		return KindMetaTag, true
	case KindNameKeywordTag, "keywords":
		return KindKeywordTag, true
	case KindNameRaw:
		return KindRaw, true
	default:
		return 0, false
	}
}

func (k SlotKind) valid() bool {
	return k >= KindTag && k <= KindRaw
}

// StorageKind is the storage field a slot maps to. It only matters for the
// declaration-time max length check and for admin form widgets.
type StorageKind int

const (
	// StorageBounded is a length-limited text column.
	StorageBounded StorageKind = iota + 1
	// StorageUnbounded is an unlimited text column.
	StorageUnbounded
)

// String returns the string representation of the storage kind
func (s StorageKind) String() string {
	if s == StorageBounded {
		return StorageNameBounded
	}
	return StorageNameUnbounded
}

var (
	slotNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tagNamePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9:_-]*$`)
)

// SlotSpec describes one declared metadata slot. It is immutable once built
// by NewSlot and safe to share between goroutines.
type SlotSpec struct {
	kind         SlotKind
	name         string
	displayName  string
	def          DefaultSpec
	headOnly     bool
	editable     bool
	validTags    []string
	validTagsSet bool
	maxLength    int
	storage      StorageKind
	storageSet   bool
	group        string
	verboseName  string
	helpText     string
}

// SlotOption configures a SlotSpec under construction.
type SlotOption func(*SlotSpec)

// WithDisplayName sets the element name (Tag) or meta name (MetaTag).
// Default: the slot name.
func WithDisplayName(name string) SlotOption {
	return func(s *SlotSpec) { s.displayName = name }
}

// WithDefault sets the fallback specification.
func WithDefault(d DefaultSpec) SlotOption {
	return func(s *SlotSpec) { s.def = d }
}

// HeadOnly restricts the slot to head placement.
func HeadOnly() SlotOption {
	return func(s *SlotSpec) { s.headOnly = true }
}

// WithHeadOnly sets head placement explicitly.
func WithHeadOnly(head bool) SlotOption {
	return func(s *SlotSpec) { s.headOnly = head }
}

// NotEditable makes resolution ignore stored values and always use the default.
// Admin collaborators must not offer the slot for editing.
func NotEditable() SlotOption {
	return func(s *SlotSpec) { s.editable = false }
}

// WithEditable sets the editable flag explicitly. Default: true.
func WithEditable(editable bool) SlotOption {
	return func(s *SlotSpec) { s.editable = editable }
}

// WithValidTags sets the allow-list for a raw slot. Calling it with no names
// allows no tags at all (every tag is stripped, text is kept).
func WithValidTags(tags ...string) SlotOption {
	return func(s *SlotSpec) {
		s.validTags = normalizeTags(tags)
		s.validTagsSet = true
	}
}

// WithUnrestrictedTags explicitly disables sanitizing for a raw slot, also
// for head-only raw slots that would otherwise get DefaultHeadTags.
func WithUnrestrictedTags() SlotOption {
	return func(s *SlotSpec) {
		s.validTags = nil
		s.validTagsSet = true
	}
}

// WithMaxLength limits stored values to n characters.
func WithMaxLength(n int) SlotOption {
	return func(s *SlotSpec) { s.maxLength = n }
}

// WithStorage sets the storage field kind explicitly.
func WithStorage(kind StorageKind) SlotOption {
	return func(s *SlotSpec) {
		s.storage = kind
		s.storageSet = true
	}
}

// WithGroup puts the slot in a named group.
func WithGroup(group string) SlotOption {
	return func(s *SlotSpec) { s.group = group }
}

// WithVerboseName sets the human readable label.
func WithVerboseName(name string) SlotOption {
	return func(s *SlotSpec) { s.verboseName = name }
}

// WithHelpText sets the help text shown next to the admin field.
func WithHelpText(text string) SlotOption {
	return func(s *SlotSpec) { s.helpText = text }
}

// NewSlot builds and validates a slot. Errors wrap ErrConfiguration.
func NewSlot(kind SlotKind, name string, opts ...SlotOption) (*SlotSpec, error) {
	s := &SlotSpec{
		kind:     kind,
		name:     name,
		editable: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.displayName == "" {
		s.displayName = name
		if kind == KindKeywordTag {
			s.displayName = DefaultKeywordDisplayName
		}
	}
	if !s.storageSet {
		s.storage = StorageUnbounded
		if s.maxLength > 0 {
			s.storage = StorageBounded
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewSlot builds a slot and panics on configuration errors.
func MustNewSlot(kind SlotKind, name string, opts ...SlotOption) *SlotSpec {
	s, err := NewSlot(kind, name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Tag is shorthand for MustNewSlot(KindTag, ...).
func Tag(name string, opts ...SlotOption) *SlotSpec {
	return MustNewSlot(KindTag, name, opts...)
}

// MetaTag is shorthand for MustNewSlot(KindMetaTag, ...).
func MetaTag(name string, opts ...SlotOption) *SlotSpec {
	return MustNewSlot(KindMetaTag, name, opts...)
}

// KeywordTag is shorthand for MustNewSlot(KindKeywordTag, ...).
func KeywordTag(name string, opts ...SlotOption) *SlotSpec {
	return MustNewSlot(KindKeywordTag, name, opts...)
}

// Raw is shorthand for MustNewSlot(KindRaw, ...).
func Raw(name string, opts ...SlotOption) *SlotSpec {
	return MustNewSlot(KindRaw, name, opts...)
}

func (s *SlotSpec) validate() error {
	if !s.kind.valid() {
		return NewConfigurationError(ErrMsgInvalidKind, "", s.name)
	}
	if s.name == "" {
		return NewConfigurationError(ErrMsgEmptySlotName, "", s.name)
	}
	if !slotNamePattern.MatchString(s.name) {
		return NewConfigurationError(ErrMsgInvalidSlotName, "", s.name)
	}
	if s.kind != KindRaw && !tagNamePattern.MatchString(s.displayName) {
		return NewConfigurationError(ErrMsgInvalidDisplayName, "", s.name)
	}
	if s.validTagsSet && s.kind != KindRaw {
		return NewConfigurationError(ErrMsgValidTagsNotRaw, "", s.name)
	}
	if s.maxLength < 0 {
		return NewConfigurationError(ErrMsgNegativeMaxLength, "", s.name)
	}
	if s.maxLength > 0 && s.storage == StorageUnbounded {
		return NewConfigurationError(ErrMsgMaxLengthUnbounded, "", s.name)
	}
	if msg := s.def.validate(); msg != "" {
		return NewConfigurationError(msg, "", s.name)
	}
	if s.def.kind == DefaultSlot && s.def.name == s.name {
		return NewConfigurationError(ErrMsgSelfSlotRef, "", s.name)
	}
	return nil
}

// Kind returns the slot kind.
func (s *SlotSpec) Kind() SlotKind { return s.kind }

// Name returns the slot name, unique within a schema.
func (s *SlotSpec) Name() string { return s.name }

// DisplayName returns the element or meta name.
func (s *SlotSpec) DisplayName() string { return s.displayName }

// Default returns the fallback specification.
func (s *SlotSpec) Default() DefaultSpec { return s.def }

// HeadOnly reports whether the slot is restricted to head placement.
func (s *SlotSpec) HeadOnly() bool { return s.headOnly }

// Editable reports whether stored values are honored.
func (s *SlotSpec) Editable() bool { return s.editable }

// MaxLength returns the length limit, 0 when unlimited.
func (s *SlotSpec) MaxLength() int { return s.maxLength }

// Storage returns the storage field kind.
func (s *SlotSpec) Storage() StorageKind { return s.storage }

// Group returns the grouping key, empty when ungrouped.
func (s *SlotSpec) Group() string { return s.group }

// VerboseName returns the human readable label, falling back to the name.
func (s *SlotSpec) VerboseName() string {
	if s.verboseName != "" {
		return s.verboseName
	}
	return strings.ReplaceAll(s.name, "_", " ")
}

// ValidTags returns the effective allow-list. A nil result means
// unrestricted. Non-raw slots always return nil. Head-only raw slots without
// an explicit list get DefaultHeadTags.
func (s *SlotSpec) ValidTags() []string {
	if s.kind != KindRaw {
		return nil
	}
	if s.validTagsSet {
		if s.validTags == nil {
			return nil
		}
		return slices.Clone(s.validTags)
	}
	if s.headOnly {
		return normalizeTags(DefaultHeadTags)
	}
	return nil
}

// HasAllowList reports whether rendering this slot requires a sanitizer.
func (s *SlotSpec) HasAllowList() bool {
	return s.ValidTags() != nil
}

// HelpText returns the configured help text followed by a note describing
// the default, when there is one.
func (s *SlotSpec) HelpText() string {
	note := s.def.helpNote()
	switch {
	case note == "":
		return s.helpText
	case s.helpText == "":
		return note
	default:
		return strings.TrimSpace(s.helpText) + " " + note
	}
}

// CheckLength validates value against MaxLength, counting characters.
func (s *SlotSpec) CheckLength(value string) error {
	if s.maxLength == 0 {
		return nil
	}
	if n := utf8.RuneCountInString(value); n > s.maxLength {
		return NewValueTooLongError(s.name, s.maxLength, n)
	}
	return nil
}

// normalizeTags lower-cases, trims, de-duplicates and sorts tag names.
// The result is never nil.
func normalizeTags(tags []string) []string {
	set := internal.NewTagSet(tags...)
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
