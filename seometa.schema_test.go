package seometa

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func slotNames(slots []*SlotSpec) []string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.Name()
	}
	return names
}

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema("site")
	require.NoError(t, err)
	assert.Equal(t, "site", schema.Name())
	assert.NotNil(t, schema.Sanitizer())
	assert.Equal(t, 0, schema.Len())

	_, err = NewSchema("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.Panics(t, func() { MustNewSchema("") })
}

func TestSchema_RegisterPreservesOrder(t *testing.T) {
	schema := MustNewSchema("site").MustRegister(
		Tag("title", HeadOnly()),
		MetaTag("description", HeadOnly()),
		Raw("heading"),
		KeywordTag("keywords", HeadOnly()),
	)

	assert.Equal(t, []string{"title", "description", "heading", "keywords"}, slotNames(schema.Slots()))
	assert.Equal(t, 4, schema.Len())
	assert.True(t, schema.Has("heading"))
	assert.False(t, schema.Has("missing"))

	slot, ok := schema.Slot("description")
	require.True(t, ok)
	assert.Equal(t, KindMetaTag, slot.Kind())
}

func TestSchema_DuplicateIsAtomic(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	schema := MustNewSchema("site", WithSchemaLogger(zap.New(core)))
	require.NoError(t, schema.Register(Tag("title", WithDefault(Literal("first")))))

	err := schema.Register(MetaTag("title"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.ErrorIs(t, err, ErrConfiguration)

	// The first registration is untouched.
	assert.Equal(t, 1, schema.Len())
	slot, _ := schema.Slot("title")
	assert.Equal(t, KindTag, slot.Kind())
	assert.Equal(t, "first", slot.Default().Value())

	entries := logs.FilterMessage(LogMsgSlotRejected).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "title", entries[0].ContextMap()[LogFieldSlot])
}

func TestSchema_RegisterRejects(t *testing.T) {
	tests := []struct {
		name  string
		setup []*SlotSpec
		slot  *SlotSpec
		msg   string
	}{
		{"nil slot", nil, nil, ErrMsgNilSlot},
		{"reserved name", nil, Tag("path"), ErrMsgReservedSlotName},
		{"slot named like group", []*SlotSpec{MetaTag("og_title", WithGroup("opengraph"))}, Tag("opengraph"), ErrMsgGroupClash},
		{"group named like slot", []*SlotSpec{Tag("title")}, MetaTag("og_title", WithGroup("title")), ErrMsgGroupClash},
		{"group named like itself", nil, MetaTag("og", WithGroup("og")), ErrMsgGroupClash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := MustNewSchema("site").MustRegister(tt.setup...)
			before := schema.Len()

			err := schema.Register(tt.slot)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, before, schema.Len())
		})
	}
}

func TestSchema_SanitizerUnavailable(t *testing.T) {
	schema := MustNewSchema("site", WithoutSanitizer())
	assert.Nil(t, schema.Sanitizer())

	err := schema.Register(Raw("heading", WithValidTags("b")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSanitizerUnavailable)
	assert.ErrorIs(t, err, ErrConfiguration)

	// Implicit head allow-list needs a sanitizer too.
	err = schema.Register(Raw("head_extra", HeadOnly()))
	assert.ErrorIs(t, err, ErrSanitizerUnavailable)

	// Unrestricted raw slots never need one.
	assert.NoError(t, schema.Register(Raw("extra")))
	assert.NoError(t, schema.Register(Raw("head_raw", HeadOnly(), WithUnrestrictedTags())))
	assert.Equal(t, 2, schema.Len())
}

func TestSchema_Placement(t *testing.T) {
	schema := MustNewSchema("site").MustRegister(
		Tag("title", HeadOnly()),
		Raw("heading"),
		MetaTag("description", HeadOnly()),
		Tag("subtitle", WithDisplayName("h2")),
	)

	assert.Equal(t, []string{"title", "description"}, slotNames(schema.HeadSlots()))
	assert.Equal(t, []string{"heading", "subtitle"}, slotNames(schema.BodySlots()))
	assert.Equal(t, slotNames(schema.HeadSlots()), slotNames(schema.SlotsFor(PlacementHead)))
	assert.Equal(t, slotNames(schema.BodySlots()), slotNames(schema.SlotsFor(PlacementBody)))
	assert.Len(t, schema.SlotsFor(PlacementAll), 4)
}

func TestSchema_Groups(t *testing.T) {
	schema := MustNewSchema("site").MustRegister(
		Tag("title", HeadOnly()),
		MetaTag("og_title", HeadOnly(), WithDisplayName("og:title"), WithGroup("opengraph")),
		MetaTag("twitter_title", HeadOnly(), WithDisplayName("twitter:title"), WithGroup("twitter")),
		MetaTag("og_description", HeadOnly(), WithDisplayName("og:description"), WithGroup("opengraph")),
	)

	assert.Equal(t, []string{"opengraph", "twitter"}, schema.Groups())
	assert.Equal(t, []string{"og_title", "og_description"}, slotNames(schema.SlotsForGroup("opengraph")))
	assert.Empty(t, schema.SlotsForGroup("missing"))
	assert.Len(t, schema.SlotsForGroup(""), 4)
}

func TestSchema_Validate(t *testing.T) {
	schema := MustNewSchema("site").MustRegister(
		MetaTag("og_title", WithDefault(SlotRef("title"))),
	)

	// Forward references are fine until Validate.
	err := schema.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownSlotRef)

	schema.MustRegister(Tag("title"))
	assert.NoError(t, schema.Validate())
}

func TestSchema_MustRegisterPanics(t *testing.T) {
	schema := MustNewSchema("site").MustRegister(Tag("title"))
	assert.Panics(t, func() { schema.MustRegister(Tag("title")) })
}

func TestSchema_ConcurrentReads(t *testing.T) {
	schema := MustNewSchema("site")
	for i := 0; i < 10; i++ {
		schema.MustRegister(Tag(fmt.Sprintf("slot_%d", i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = schema.Slots()
			_, _ = schema.Slot(fmt.Sprintf("slot_%d", i%10))
			_ = schema.HeadSlots()
			_ = schema.Groups()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, schema.Len())
}

func TestSchema_ConcurrentDuplicateRegistration(t *testing.T) {
	schema := MustNewSchema("site")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- schema.Register(Tag("title"))
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateSlot)
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, dup)
	assert.Equal(t, 1, schema.Len())
}
