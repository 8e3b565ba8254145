package seometa

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Schema is the ordered collection of slots for one metadata record type.
// Insertion order is preserved for output and admin display. Slot names are
// unique. Schema is safe for concurrent use; it is normally built once at
// startup and only read afterwards.
type Schema struct {
	name      string
	slots     []*SlotSpec
	byName    map[string]*SlotSpec
	groups    []string
	sanitizer Sanitizer
	callables map[string]CallableFunc
	mu        sync.RWMutex
	logger    *zap.Logger
}

// SchemaOption configures a Schema.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	sanitizer Sanitizer
	logger    *zap.Logger
	callables map[string]CallableFunc
}

// WithSchemaSanitizer sets the sanitizer that enforces raw slot allow-lists.
// Passing nil declares that no sanitizer is available: registering a raw
// slot with an allow-list then fails with ErrSanitizerUnavailable.
// Default: DefaultSanitizer().
func WithSchemaSanitizer(s Sanitizer) SchemaOption {
	return func(c *schemaConfig) { c.sanitizer = s }
}

// WithoutSanitizer is WithSchemaSanitizer(nil).
func WithoutSanitizer() SchemaOption {
	return WithSchemaSanitizer(nil)
}

// WithSchemaLogger sets the logger for the schema.
// Default: nil (no logging)
func WithSchemaLogger(logger *zap.Logger) SchemaOption {
	return func(c *schemaConfig) { c.logger = logger }
}

// WithCallables makes named callables available to YAML declarations
// (`default: {callable: name}`).
func WithCallables(callables map[string]CallableFunc) SchemaOption {
	return func(c *schemaConfig) {
		if c.callables == nil {
			c.callables = make(map[string]CallableFunc, len(callables))
		}
		for name, fn := range callables {
			c.callables[name] = fn
		}
	}
}

// NewSchema creates an empty schema.
func NewSchema(name string, opts ...SchemaOption) (*Schema, error) {
	if name == "" {
		return nil, NewConfigurationError(ErrMsgEmptySchemaName, name, "")
	}

	config := &schemaConfig{sanitizer: DefaultSanitizer()}
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgSchemaCreated, zap.String(LogFieldSchema, name))

	return &Schema{
		name:      name,
		byName:    make(map[string]*SlotSpec),
		sanitizer: config.sanitizer,
		callables: config.callables,
		logger:    logger,
	}, nil
}

// MustNewSchema creates a schema and panics on error.
func MustNewSchema(name string, opts ...SchemaOption) *Schema {
	s, err := NewSchema(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Sanitizer returns the configured sanitizer, nil when unavailable.
func (s *Schema) Sanitizer() Sanitizer { return s.sanitizer }

// Register appends a slot. It fails with a configuration error, leaving the
// schema unchanged, when the name is taken (ErrDuplicateSlot), reserved, or
// clashes with a group name, or when the slot needs a sanitizer the schema
// does not have (ErrSanitizerUnavailable).
func (s *Schema) Register(slot *SlotSpec) error {
	if slot == nil {
		return NewConfigurationError(ErrMsgNilSlot, s.name, "")
	}
	name := slot.Name()
	if slices.Contains(ReservedSlotNames, name) {
		return s.reject(NewConfigurationError(ErrMsgReservedSlotName, s.name, name), name)
	}
	if slot.HasAllowList() && s.sanitizer == nil {
		return s.reject(NewSanitizerUnavailableError(s.name, name), name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; exists {
		return s.reject(NewDuplicateSlotError(s.name, name), name)
	}
	if slices.Contains(s.groups, name) {
		return s.reject(NewConfigurationError(ErrMsgGroupClash, s.name, name), name)
	}
	if g := slot.Group(); g != "" {
		if _, clash := s.byName[g]; clash || g == name {
			return s.reject(NewConfigurationError(ErrMsgGroupClash, s.name, name), name)
		}
		if !slices.Contains(s.groups, g) {
			s.groups = append(s.groups, g)
		}
	}

	s.slots = append(s.slots, slot)
	s.byName[name] = slot
	s.logger.Debug(LogMsgSlotRegistered,
		zap.String(LogFieldSchema, s.name),
		zap.String(LogFieldSlot, name),
		zap.String(LogFieldKind, slot.Kind().String()),
	)
	return nil
}

func (s *Schema) reject(err error, slot string) error {
	s.logger.Warn(LogMsgSlotRejected,
		zap.String(LogFieldSchema, s.name),
		zap.String(LogFieldSlot, slot),
		zap.Error(err),
	)
	return err
}

// MustRegister registers a slot and panics on error.
func (s *Schema) MustRegister(slots ...*SlotSpec) *Schema {
	for _, slot := range slots {
		if err := s.Register(slot); err != nil {
			panic(err)
		}
	}
	return s
}

// Validate checks cross-slot constraints that cannot be checked while slots
// are still being registered: every SlotRef default must name a slot of
// this schema.
func (s *Schema) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, slot := range s.slots {
		def := slot.Default()
		if def.Kind() != DefaultSlot {
			continue
		}
		if _, ok := s.byName[def.Name()]; !ok {
			return NewConfigurationError(ErrMsgUnknownSlotRef, s.name, slot.Name())
		}
	}
	return nil
}

// Slot returns a slot by name.
func (s *Schema) Slot(name string) (*SlotSpec, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.byName[name]
	return slot, ok
}

// Has reports whether a slot with the given name is registered.
func (s *Schema) Has(name string) bool {
	_, ok := s.Slot(name)
	return ok
}

// Slots returns all slots in declaration order.
func (s *Schema) Slots() []*SlotSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.slots)
}

// Len returns the number of registered slots.
func (s *Schema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.slots)
}

// Groups returns the group names in order of first appearance.
func (s *Schema) Groups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.groups)
}

// SlotsForGroup returns the slots of a group in declaration order. An empty
// group name returns all slots.
func (s *Schema) SlotsForGroup(group string) []*SlotSpec {
	if group == "" {
		return s.Slots()
	}
	return s.filter(func(slot *SlotSpec) bool { return slot.Group() == group })
}

// HeadSlots returns all and only the head-only slots, in declaration order.
func (s *Schema) HeadSlots() []*SlotSpec {
	return s.filter(func(slot *SlotSpec) bool { return slot.HeadOnly() })
}

// BodySlots returns the slots that are not head-only, in declaration order.
func (s *Schema) BodySlots() []*SlotSpec {
	return s.filter(func(slot *SlotSpec) bool { return !slot.HeadOnly() })
}

// SlotsFor returns the slots rendered for a placement.
func (s *Schema) SlotsFor(p Placement) []*SlotSpec {
	switch p {
	case PlacementHead:
		return s.HeadSlots()
	case PlacementBody:
		return s.BodySlots()
	default:
		return s.Slots()
	}
}

func (s *Schema) filter(keep func(*SlotSpec) bool) []*SlotSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*SlotSpec, 0, len(s.slots))
	for _, slot := range s.slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return out
}

func (s *Schema) callable(name string) (CallableFunc, bool) {
	fn, ok := s.callables[name]
	return fn, ok && fn != nil
}
