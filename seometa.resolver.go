package seometa

import (
	"context"

	"github.com/itsatony/go-seometa/internal"
	"go.uber.org/zap"
)

// Resolver computes the effective value of a slot for a record.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	schema *Schema
	logger *zap.Logger
}

// NewResolver creates a resolver. schema is only needed for SlotRef
// defaults and may be nil otherwise.
func NewResolver(schema *Schema, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{schema: schema, logger: logger}
}

// Resolve returns the effective value of slot for rec, or nil when the slot
// has no value (the "omit this slot" signal).
//
// An editable slot with a non-empty stored value returns it verbatim.
// Otherwise the default is dispatched on: a callable is invoked with the
// record, a field or method reference is looked up on the record (and
// invoked if it is a function), a literal is returned unchanged.
//
// A reference to an attribute the record does not have fails with an error
// wrapping ErrResolution. Defaults run at call time, so they always see the
// current record state.
func (r *Resolver) Resolve(ctx context.Context, rec Record, slot *SlotSpec) (any, error) {
	v, err := r.resolve(ctx, rec, slot, nil)
	if err != nil {
		r.logger.Debug(LogMsgResolveFailed,
			zap.String(LogFieldSlot, slot.Name()),
			zap.String(LogFieldDefault, slot.Default().String()),
			zap.Error(err),
		)
	}
	return v, err
}

func (r *Resolver) resolve(ctx context.Context, rec Record, slot *SlotSpec, visiting map[string]struct{}) (any, error) {
	if slot.Editable() && rec != nil {
		if v, ok := rec.StoredValue(slot.Name()); ok && v != "" {
			return v, nil
		}
	}

	def := slot.Default()
	switch def.Kind() {
	case DefaultCallable:
		v, err := def.Func()(ctx, rec)
		if err != nil {
			return nil, NewResolutionError(ErrMsgCallableFailed, slot.Name(), "", err)
		}
		return v, nil

	case DefaultField, DefaultMethod:
		if rec == nil {
			return nil, NewResolutionError(ErrMsgNilRecord, slot.Name(), def.Name(), nil)
		}
		attr, ok := rec.Attribute(def.Name())
		if !ok {
			return nil, NewResolutionError(ErrMsgAttributeNotFound, slot.Name(), def.Name(), nil)
		}
		v, err := invokeAttribute(ctx, rec, attr)
		if err != nil {
			return nil, NewResolutionError(ErrMsgInvokeFailed, slot.Name(), def.Name(), err)
		}
		return v, nil

	case DefaultSlot:
		return r.resolveSlotRef(ctx, rec, slot, def.Name(), visiting)

	case DefaultLiteral:
		return def.Value(), nil

	default:
		return nil, nil
	}
}

func (r *Resolver) resolveSlotRef(ctx context.Context, rec Record, slot *SlotSpec, target string, visiting map[string]struct{}) (any, error) {
	if r.schema == nil {
		return nil, NewResolutionError(ErrMsgNoSchema, slot.Name(), target, nil)
	}
	ref, ok := r.schema.Slot(target)
	if !ok {
		return nil, NewResolutionError(ErrMsgUnknownSlotRef, slot.Name(), target, nil)
	}

	if visiting == nil {
		visiting = make(map[string]struct{})
	}
	visiting[slot.Name()] = struct{}{}
	if _, seen := visiting[target]; seen {
		return nil, NewResolutionError(ErrMsgSlotRefCycle, slot.Name(), target, nil)
	}
	return r.resolve(ctx, rec, ref, visiting)
}

// invokeAttribute calls function-valued attributes and returns anything else
// as is. Functions taking the record receive it as their only argument;
// bound methods found by ObjectRecord take nothing or a context.
func invokeAttribute(ctx context.Context, rec Record, attr any) (any, error) {
	switch fn := attr.(type) {
	case CallableFunc:
		return fn(ctx, rec)
	case func(context.Context, Record) (any, error):
		return fn(ctx, rec)
	case func(Record) (any, error):
		return fn(rec)
	case func(Record) any:
		return fn(rec), nil
	case func(Record) string:
		return fn(rec), nil
	}
	if internal.IsFunc(attr) {
		return internal.CallNiladic(ctx, attr)
	}
	return attr, nil
}
