//go:build integration

package seometa

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresRecordStore, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("seometa_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	store, err := NewPostgresRecordStore(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres store")

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return store, cleanup
}

func TestPostgres_E2E_RecordLifecycle(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	generic := &StoredRecord{
		Schema:     "site",
		Path:       "/about",
		Values:     map[string]string{"title": "About"},
		Attributes: map[string]any{"headline": "About us"},
	}
	require.NoError(t, store.Save(ctx, generic))
	assert.NotEmpty(t, generic.ID)

	localized := &StoredRecord{
		Schema: "site",
		Path:   "/about",
		Site:   "de.example.com",
		Values: map[string]string{"title": "Über uns"},
	}
	require.NoError(t, store.Save(ctx, localized))
	assert.NotEqual(t, generic.ID, localized.ID)

	t.Run("Lookup prefers site", func(t *testing.T) {
		rec, err := store.Lookup(ctx, "site", "/about", "de.example.com")
		require.NoError(t, err)
		assert.Equal(t, "Über uns", rec.Values["title"])
	})

	t.Run("Lookup falls back", func(t *testing.T) {
		rec, err := store.Lookup(ctx, "site", "/about", "fr.example.com")
		require.NoError(t, err)
		assert.Equal(t, "About", rec.Values["title"])
		assert.Equal(t, "About us", rec.Attributes["headline"])
	})

	t.Run("Upsert keeps id", func(t *testing.T) {
		update := &StoredRecord{Schema: "site", Path: "/about", Values: map[string]string{"title": "About v2"}}
		require.NoError(t, store.Save(ctx, update))
		assert.Equal(t, generic.ID, update.ID)

		rec, err := store.Get(ctx, generic.ID)
		require.NoError(t, err)
		assert.Equal(t, "About v2", rec.Values["title"])
	})

	t.Run("List", func(t *testing.T) {
		out, err := store.List(ctx, &RecordQuery{Schema: "site"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("Render from stored record", func(t *testing.T) {
		schema := MustNewSchema("site").MustRegister(MustNewSlot(KindTag, "title", HeadOnly()))
		renderer := MustNewRenderer()

		rec, err := store.Lookup(ctx, "site", "/about", "de.example.com")
		require.NoError(t, err)

		out, err := renderer.RenderAll(ctx, rec, schema, PlacementHead)
		require.NoError(t, err)
		assert.Equal(t, "<title>Über uns</title>", out.String())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, localized.ID))
		_, err := store.Get(ctx, localized.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestPostgres_E2E_MigrationsIdempotent(t *testing.T) {
	store, cleanup := setupPostgresContainer(t)
	defer cleanup()

	require.NoError(t, store.RunMigrations(context.Background()))
	require.NoError(t, store.RunMigrations(context.Background()))
}
