package seometa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot_Defaults(t *testing.T) {
	slot, err := NewSlot(KindTag, "title")
	require.NoError(t, err)

	assert.Equal(t, KindTag, slot.Kind())
	assert.Equal(t, "title", slot.Name())
	assert.Equal(t, "title", slot.DisplayName())
	assert.True(t, slot.Editable())
	assert.False(t, slot.HeadOnly())
	assert.Equal(t, StorageUnbounded, slot.Storage())
	assert.Equal(t, 0, slot.MaxLength())
	assert.Empty(t, slot.Group())
	assert.False(t, slot.Default().IsSet())
	assert.Nil(t, slot.ValidTags())
}

func TestNewSlot_Options(t *testing.T) {
	slot, err := NewSlot(KindMetaTag, "og_title",
		WithDisplayName("og:title"),
		HeadOnly(),
		NotEditable(),
		WithMaxLength(68),
		WithGroup("opengraph"),
		WithVerboseName("Open Graph title"),
		WithDefault(SlotRef("title")),
	)
	require.NoError(t, err)

	assert.Equal(t, "og:title", slot.DisplayName())
	assert.True(t, slot.HeadOnly())
	assert.False(t, slot.Editable())
	assert.Equal(t, 68, slot.MaxLength())
	assert.Equal(t, StorageBounded, slot.Storage())
	assert.Equal(t, "opengraph", slot.Group())
	assert.Equal(t, "Open Graph title", slot.VerboseName())
	assert.Equal(t, DefaultSlot, slot.Default().Kind())
}

func TestNewSlot_KeywordDisplayName(t *testing.T) {
	slot := KeywordTag("tags")
	assert.Equal(t, DefaultKeywordDisplayName, slot.DisplayName())

	slot = KeywordTag("tags", WithDisplayName("news_keywords"))
	assert.Equal(t, "news_keywords", slot.DisplayName())
}

func TestNewSlot_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		kind SlotKind
		slot string
		opts []SlotOption
		msg  string
	}{
		{"invalid kind", SlotKind(0), "title", nil, ErrMsgInvalidKind},
		{"empty name", KindTag, "", nil, ErrMsgEmptySlotName},
		{"name starts with digit", KindTag, "1title", nil, ErrMsgInvalidSlotName},
		{"name with space", KindTag, "page title", nil, ErrMsgInvalidSlotName},
		{"bad display name", KindTag, "title", []SlotOption{WithDisplayName("bad name")}, ErrMsgInvalidDisplayName},
		{"valid tags on tag", KindTag, "title", []SlotOption{WithValidTags("b")}, ErrMsgValidTagsNotRaw},
		{"unrestricted on meta", KindMetaTag, "desc", []SlotOption{WithUnrestrictedTags()}, ErrMsgValidTagsNotRaw},
		{"negative max length", KindTag, "title", []SlotOption{WithMaxLength(-1)}, ErrMsgNegativeMaxLength},
		{"max length on text", KindTag, "title", []SlotOption{WithMaxLength(10), WithStorage(StorageUnbounded)}, ErrMsgMaxLengthUnbounded},
		{"empty field ref", KindTag, "title", []SlotOption{WithDefault(FieldRef(""))}, ErrMsgInvalidDefault},
		{"nil callable", KindTag, "title", []SlotOption{WithDefault(Callable(nil))}, ErrMsgInvalidDefault},
		{"self slot ref", KindTag, "title", []SlotOption{WithDefault(SlotRef("title"))}, ErrMsgSelfSlotRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlot(tt.kind, tt.slot, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.True(t, IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewSlot_RawDisplayNameUnchecked(t *testing.T) {
	_, err := NewSlot(KindRaw, "extra", WithDisplayName("anything goes"))
	assert.NoError(t, err)
}

func TestNewSlot_BoundedWithoutLength(t *testing.T) {
	slot, err := NewSlot(KindTag, "title", WithStorage(StorageBounded))
	require.NoError(t, err)
	assert.Equal(t, StorageBounded, slot.Storage())
}

func TestMustNewSlot_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNewSlot(KindTag, "") })
	assert.Panics(t, func() { Tag("bad name") })
	assert.NotPanics(t, func() { Raw("extra") })
}

func TestSlotSpec_ValidTags(t *testing.T) {
	tests := []struct {
		name string
		slot *SlotSpec
		want []string
	}{
		{"tag", Tag("title"), nil},
		{"raw unrestricted", Raw("extra"), nil},
		{"raw normalized", Raw("extra", WithValidTags("B", " i ", "b")), []string{"b", "i"}},
		{"raw allow none", Raw("extra", WithValidTags()), []string{}},
		{"head raw default", Raw("extra", HeadOnly()), []string{"base", "head", "link", "meta", "script", "title"}},
		{"head raw explicit", Raw("extra", HeadOnly(), WithValidTags("link")), []string{"link"}},
		{"head raw unrestricted", Raw("extra", HeadOnly(), WithUnrestrictedTags()), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.slot.ValidTags()
			if tt.want == nil {
				assert.Nil(t, got)
				assert.False(t, tt.slot.HasAllowList())
				return
			}
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.slot.HasAllowList())
		})
	}
}

func TestSlotSpec_ValidTagsReturnsCopy(t *testing.T) {
	slot := Raw("extra", WithValidTags("b", "i"))
	tags := slot.ValidTags()
	tags[0] = "script"
	assert.Equal(t, []string{"b", "i"}, slot.ValidTags())
}

func TestSlotSpec_HelpText(t *testing.T) {
	callable := Callable(func(context.Context, Record) (any, error) { return nil, nil })

	tests := []struct {
		name string
		slot *SlotSpec
		want string
	}{
		{"plain", Tag("title", WithHelpText("Page title.")), "Page title."},
		{"none", Tag("title"), ""},
		{"literal", Tag("title", WithHelpText("Page title."), WithDefault(Literal("My Site"))),
			`Page title. If empty, the default "My Site" is used.`},
		{"field only", MetaTag("description", WithDefault(FieldRef("summary"))),
			`If empty, this is populated from "summary".`},
		{"method", MetaTag("description", WithDefault(MethodRef("Summary"))),
			`If empty, this is populated from "Summary".`},
		{"slot", MetaTag("og_title", WithDefault(SlotRef("title"))),
			`If empty, this is populated from the title slot.`},
		{"callable", MetaTag("description", WithDefault(callable)),
			HelpNoteCallable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.HelpText())
		})
	}
}

func TestSlotSpec_CheckLength(t *testing.T) {
	slot := Tag("title", WithMaxLength(3))

	assert.NoError(t, slot.CheckLength("abc"))
	assert.NoError(t, slot.CheckLength("äöü"))

	err := slot.CheckLength("abcd")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueTooLong)
	assert.ErrorIs(t, err, ErrInvalidValue)

	assert.NoError(t, Tag("body").CheckLength("anything at all"))
}

func TestSlotSpec_VerboseName(t *testing.T) {
	assert.Equal(t, "og title", Tag("og_title").VerboseName())
	assert.Equal(t, "Title", Tag("title", WithVerboseName("Title")).VerboseName())
}

func TestParseSlotKind(t *testing.T) {
	tests := []struct {
		in   string
		want SlotKind
		ok   bool
	}{
		{"tag", KindTag, true},
		{"Tag", KindTag, true},
		{"metatag", KindMetaTag, true},
		{"meta", KindMetaTag, true},
		{"keywordtag", KindKeywordTag, true},
		{"keywords", KindKeywordTag, true},
		{" raw ", KindRaw, true},
		{"link", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSlotKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, k := range []SlotKind{KindTag, KindMetaTag, KindKeywordTag, KindRaw} {
		parsed, ok := ParseSlotKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, KindNameUnknown, SlotKind(42).String())
}

func TestDefaultSpec(t *testing.T) {
	assert.Equal(t, DefaultNone, NoDefault().Kind())
	assert.False(t, NoDefault().IsSet())

	lit := Literal(42)
	assert.Equal(t, DefaultLiteral, lit.Kind())
	assert.Equal(t, 42, lit.Value())
	assert.Equal(t, "literal(42)", lit.String())

	field := FieldRef("summary")
	assert.Equal(t, "summary", field.Name())
	assert.Equal(t, "field(summary)", field.String())

	assert.Equal(t, "method(Summary)", MethodRef("Summary").String())
	assert.Equal(t, "slot(title)", SlotRef("title").String())

	fn := Callable(func(context.Context, Record) (any, error) { return "x", nil })
	assert.NotNil(t, fn.Func())
	assert.Equal(t, DefaultNameCallable, fn.String())
	assert.Equal(t, DefaultNameNone, NoDefault().String())

	// Literal strings are never treated as attribute names.
	assert.Equal(t, DefaultLiteral, Literal("title").Kind())
}
