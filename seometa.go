// Package seometa declares SEO metadata slots and renders them as HTML.
//
// A Schema is an ordered set of slots. Each slot says what kind of markup it
// produces, where it may appear and what value to fall back to when a record
// has nothing stored for it:
//
//	schema := seometa.MustNewSchema("site").MustRegister(
//	    seometa.Tag("title", seometa.HeadOnly(), seometa.WithMaxLength(68),
//	        seometa.WithDefault(seometa.Literal("My Site"))),
//	    seometa.MetaTag("description", seometa.HeadOnly(),
//	        seometa.WithDefault(seometa.FieldRef("summary"))),
//	    seometa.Raw("heading", seometa.WithValidTags("b", "i")),
//	)
//
// # Rendering
//
// A Renderer resolves every slot for a record and renders the fragments in
// declaration order:
//
//	rec := seometa.NewMapRecord(map[string]string{"heading": "<b>x</b><script>y</script>"}).
//	    WithAttribute("summary", "Hello")
//
//	renderer := seometa.MustNewRenderer()
//	head, _ := renderer.RenderAll(ctx, rec, schema, seometa.PlacementHead)
//	// <title>My Site</title>
//	// <meta name="description" content="Hello" />
//
//	body, _ := renderer.RenderAll(ctx, rec, schema, seometa.PlacementBody)
//	// <b>x</b>y
//
// Slots whose value resolves to nothing are omitted, never rendered empty.
//
// # Slot Kinds
//
// KindTag renders <name>escaped value</name>. KindMetaTag renders
// <meta name="name" content="escaped value" />. KindKeywordTag is a meta tag
// whose value is normalized to a comma separated keyword list. KindRaw emits
// markup verbatim after the sanitizer has stripped every tag outside the
// slot's allow-list.
//
// # Defaults
//
// Defaults are explicit: Literal returns a fixed value, FieldRef and
// MethodRef read a record attribute (invoking it when it is a function),
// Callable computes a value at render time and SlotRef reuses another slot.
// A slot created with NotEditable ignores stored values.
//
// # Error Handling
//
// Declaration mistakes wrap ErrConfiguration and are returned by NewSlot,
// Schema.Register and Schema.Validate. Render-time failures wrap
// ErrResolution. By default the first failure aborts RenderAll; with
// WithErrorStrategy(ErrorStrategySkip) the slot is omitted, logged and
// recorded in Output.Failures:
//
//	renderer, _ := seometa.NewRenderer(
//	    seometa.WithErrorStrategy(seometa.ErrorStrategySkip),
//	    seometa.WithLogger(logger),
//	)
//
// # Storage and Caching
//
// Records can be kept in a RecordStore ("memory" or "postgres" driver) and
// whole page renders cached in a RenderCache (in-memory or Redis) via
// Renderer.RenderPage.
package seometa
