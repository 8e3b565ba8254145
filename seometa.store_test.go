package seometa

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDrivers_Registered(t *testing.T) {
	drivers := ListStoreDrivers()
	assert.Contains(t, drivers, StoreDriverNameMemory)
	assert.Contains(t, drivers, StoreDriverNamePostgres)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore("nope", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), ErrMsgStoreDriverNotFound)
}

func TestRegisterStoreDriver_Panics(t *testing.T) {
	assert.Panics(t, func() { RegisterStoreDriver("nil-driver", nil) })
	assert.Panics(t, func() { RegisterStoreDriver(StoreDriverNameMemory, &MemoryStoreDriver{}) })
}

func TestStoredRecord_Record(t *testing.T) {
	rec := &StoredRecord{
		Schema:     "site",
		Path:       "/about",
		Site:       "example.com",
		Values:     map[string]string{"title": "About"},
		Attributes: map[string]any{"headline": "About us"},
	}

	v, ok := rec.StoredValue("title")
	assert.True(t, ok)
	assert.Equal(t, "About", v)

	_, ok = rec.StoredValue("description")
	assert.False(t, ok)

	attr, ok := rec.Attribute("headline")
	assert.True(t, ok)
	assert.Equal(t, "About us", attr)

	attr, ok = rec.Attribute(AttrPath)
	assert.True(t, ok)
	assert.Equal(t, "/about", attr)

	attr, ok = rec.Attribute(AttrSite)
	assert.True(t, ok)
	assert.Equal(t, "example.com", attr)

	assert.Equal(t, "example.com", rec.SiteID())
}

func TestMemoryRecordStore_SaveAndGet(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	rec := &StoredRecord{Schema: "site", Path: "/", Values: map[string]string{"title": "Home"}}
	require.NoError(t, store.Save(ctx, rec))
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Values["title"])

	// Returned copies do not alias stored maps.
	got.Values["title"] = "changed"
	again, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", again.Values["title"])
}

func TestMemoryRecordStore_Upsert(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	first := &StoredRecord{Schema: "site", Path: "/", Values: map[string]string{"title": "v1"}}
	require.NoError(t, store.Save(ctx, first))

	second := &StoredRecord{Schema: "site", Path: "/", Values: map[string]string{"title": "v2"}}
	require.NoError(t, store.Save(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "v2", all[0].Values["title"])
}

func TestMemoryRecordStore_InvalidRecord(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	err := store.Save(ctx, &StoredRecord{Path: "/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidRecord)

	err = store.Save(ctx, nil)
	require.Error(t, err)
}

func TestMemoryRecordStore_LookupSiteFallback(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &StoredRecord{
		Schema: "site", Path: "/about", Values: map[string]string{"title": "Generic"},
	}))
	require.NoError(t, store.Save(ctx, &StoredRecord{
		Schema: "site", Path: "/about", Site: "de.example.com", Values: map[string]string{"title": "Über uns"},
	}))

	tests := []struct {
		name  string
		site  string
		title string
	}{
		{"site specific", "de.example.com", "Über uns"},
		{"falls back to site-less", "fr.example.com", "Generic"},
		{"site-less", "", "Generic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := store.Lookup(ctx, "site", "/about", tt.site)
			require.NoError(t, err)
			assert.Equal(t, tt.title, rec.Values["title"])
		})
	}

	_, err := store.Lookup(ctx, "site", "/missing", "de.example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryRecordStore_Delete(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	rec := &StoredRecord{Schema: "site", Path: "/"}
	require.NoError(t, store.Save(ctx, rec))
	require.NoError(t, store.Delete(ctx, rec.ID))

	_, err := store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = store.Lookup(ctx, "site", "/", "")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, store.Delete(ctx, rec.ID), ErrRecordNotFound)
}

func TestMemoryRecordStore_List(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	for _, r := range []*StoredRecord{
		{Schema: "site", Path: "/blog/b"},
		{Schema: "site", Path: "/blog/a"},
		{Schema: "site", Path: "/about", Site: "example.com"},
		{Schema: "shop", Path: "/blog/c"},
	} {
		require.NoError(t, store.Save(ctx, r))
	}

	t.Run("by schema and prefix", func(t *testing.T) {
		out, err := store.List(ctx, &RecordQuery{Schema: "site", PathPrefix: "/blog/"})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "/blog/a", out[0].Path)
		assert.Equal(t, "/blog/b", out[1].Path)
	})

	t.Run("by site", func(t *testing.T) {
		out, err := store.List(ctx, &RecordQuery{Site: "example.com"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "/about", out[0].Path)
	})

	t.Run("pagination", func(t *testing.T) {
		out, err := store.List(ctx, &RecordQuery{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "site", out[0].Schema)
		assert.Equal(t, "/about", out[0].Path)

		out, err = store.List(ctx, &RecordQuery{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestMemoryRecordStore_Closed(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Save(ctx, &StoredRecord{Schema: "s", Path: "/"}), ErrStoreClosed)
	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.Lookup(ctx, "s", "/", "")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.List(ctx, nil)
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Delete(ctx, "x"), ErrStoreClosed)
}

func TestMemoryRecordStore_CanceledContext(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, &StoredRecord{Schema: "s", Path: "/"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMemoryRecordStore_Concurrent(t *testing.T) {
	store := NewMemoryRecordStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, &StoredRecord{Schema: "site", Path: "/", Values: map[string]string{"title": "x"}})
			_, _ = store.Lookup(ctx, "site", "/", "")
		}()
	}
	wg.Wait()

	out, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(StoreDriverNameMemory, "")
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*MemoryRecordStore)
	assert.True(t, ok)
}
