package seometa

import (
	"context"
	"fmt"

	"github.com/itsatony/go-seometa/internal"
	"go.uber.org/zap"
)

// Renderer turns resolved slot values into markup. It keeps no state between
// calls, so one Renderer can serve any number of goroutines.
type Renderer struct {
	config *rendererConfig
	logger *zap.Logger
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) (*Renderer, error) {
	config := defaultRendererConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.cacheTTL < 0 {
		return nil, NewConfigurationError(ErrMsgNegativeCacheTTL, "", "")
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{config: config, logger: logger}, nil
}

// MustNewRenderer creates a Renderer and panics if there's an error.
func MustNewRenderer(opts ...Option) *Renderer {
	r, err := NewRenderer(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Render produces the fragment for one slot. ok is false when value is nil
// or renders to nothing; no empty elements are emitted.
//
// Tag slots escape the value as a text node, MetaTag and KeywordTag slots
// escape both attributes, Raw slots pass through the sanitizer and are
// emitted verbatim.
func (r *Renderer) Render(slot *SlotSpec, value any) (fragment string, ok bool, err error) {
	return renderSlot(r.config.sanitizer, slot, value)
}

func renderSlot(sanitizer Sanitizer, slot *SlotSpec, value any) (string, bool, error) {
	text, ok := internal.Stringify(value)
	if !ok {
		return "", false, nil
	}

	switch slot.Kind() {
	case KindTag:
		name := slot.DisplayName()
		return fmt.Sprintf(ElementFormat, name, internal.EscapeText(text), name), true, nil

	case KindMetaTag:
		return metaTag(slot.DisplayName(), internal.CollapseLines(text))

	case KindKeywordTag:
		return metaTag(slot.DisplayName(), internal.NormalizeKeywords(text))

	case KindRaw:
		tags := slot.ValidTags()
		if tags == nil {
			return text, true, nil
		}
		if sanitizer == nil {
			return "", false, NewSanitizerUnavailableError("", slot.Name())
		}
		clean, err := sanitizer.Sanitize(text, tags)
		if err != nil {
			return "", false, NewSanitizeError(slot.Name(), err)
		}
		return clean, clean != "", nil

	default:
		return "", false, NewConfigurationError(ErrMsgInvalidKind, "", slot.Name())
	}
}

func metaTag(name, content string) (string, bool, error) {
	if content == "" {
		return "", false, nil
	}
	return fmt.Sprintf(MetaTagFormat, internal.EscapeAttr(name), internal.EscapeAttr(content)), true, nil
}

// RenderAll resolves and renders every slot of schema that belongs to the
// placement, in declaration order. Failures either abort the pass
// (ErrorStrategyPropagate) or are logged and recorded on the Output
// (ErrorStrategySkip); they never affect other records.
func (r *Renderer) RenderAll(ctx context.Context, rec Record, schema *Schema, placement Placement) (*Output, error) {
	return r.renderSlots(ctx, rec, schema, placement, schema.SlotsFor(placement))
}

// RenderGroup renders the slots of one group, ignoring placement, and
// returns the joined markup.
func (r *Renderer) RenderGroup(ctx context.Context, rec Record, schema *Schema, group string) (string, error) {
	out, err := r.renderSlots(ctx, rec, schema, PlacementAll, schema.SlotsForGroup(group))
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func (r *Renderer) renderSlots(ctx context.Context, rec Record, schema *Schema, placement Placement, slots []*SlotSpec) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug(LogMsgRenderStart,
		zap.String(LogFieldSchema, schema.Name()),
		zap.String(LogFieldPlacement, placement.String()),
	)

	resolver := NewResolver(schema, r.logger)
	out := &Output{
		Schema:    schema.Name(),
		Placement: placement,
		separator: r.config.separator,
	}

	for _, slot := range slots {
		markup, ok, err := r.renderOne(ctx, resolver, rec, schema, slot)
		if err != nil {
			r.config.metrics.slotFailed(schema.Name(), slot.Name())
			if r.config.errorStrategy == ErrorStrategyPropagate {
				return nil, err
			}
			r.logger.Warn(LogMsgSlotSkipped,
				zap.String(LogFieldSchema, schema.Name()),
				zap.String(LogFieldSlot, slot.Name()),
				zap.Error(err),
			)
			out.Failures = append(out.Failures, SlotFailure{Slot: slot.Name(), Err: err})
			continue
		}
		if !ok {
			r.config.metrics.slotOmitted(schema.Name())
			continue
		}
		r.config.metrics.slotRendered(schema.Name(), slot.Kind())
		out.Fragments = append(out.Fragments, Fragment{
			Slot:   slot.Name(),
			Group:  slot.Group(),
			Kind:   slot.Kind(),
			Markup: markup,
		})
	}

	r.logger.Debug(LogMsgRenderComplete,
		zap.String(LogFieldSchema, schema.Name()),
		zap.Int(LogFieldFragments, len(out.Fragments)),
		zap.Int(LogFieldFailures, len(out.Failures)),
	)
	return out, nil
}

func (r *Renderer) renderOne(ctx context.Context, resolver *Resolver, rec Record, schema *Schema, slot *SlotSpec) (string, bool, error) {
	value, err := resolver.Resolve(ctx, rec, slot)
	if err != nil {
		return "", false, err
	}
	return renderSlot(schema.Sanitizer(), slot, value)
}
