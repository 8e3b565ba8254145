package seometa

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"
)

// Built-in attribute names exposed by StoredRecord
const (
	AttrPath = "path"
	AttrSite = "site"
)

// StoredRecord is a metadata record as persisted by a RecordStore. It
// implements Record, so a looked-up record can be rendered directly.
type StoredRecord struct {
	// ID is the unique identifier, set by the store on first save.
	ID string `json:"id"`

	// Schema is the name of the schema the record belongs to.
	Schema string `json:"schema"`

	// Path is the page path the record describes.
	Path string `json:"path"`

	// Site scopes the record to one site; empty applies to every site.
	Site string `json:"site,omitempty"`

	// Values holds the stored slot values.
	Values map[string]string `json:"values,omitempty"`

	// Attributes holds extra data that FieldRef defaults can read.
	Attributes map[string]any `json:"attributes,omitempty"`

	// CreatedAt is when the record was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredValue implements Record.
func (r *StoredRecord) StoredValue(slot string) (string, bool) {
	v, ok := r.Values[slot]
	return v, ok
}

// Attribute implements Record. Besides Attributes, "path" and "site" are
// always available.
func (r *StoredRecord) Attribute(name string) (any, bool) {
	if v, ok := r.Attributes[name]; ok {
		return v, true
	}
	switch name {
	case AttrPath:
		return r.Path, true
	case AttrSite:
		return r.Site, true
	}
	return nil, false
}

// SiteID implements Record.
func (r *StoredRecord) SiteID() string { return r.Site }

// RecordQuery filters RecordStore.List.
type RecordQuery struct {
	// Schema filters by schema name (empty matches all).
	Schema string

	// Site filters by site (empty matches all).
	Site string

	// PathPrefix filters to paths starting with this prefix.
	PathPrefix string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// RecordStore persists metadata records keyed by schema, path and site.
// Implementations must be safe for concurrent use.
type RecordStore interface {
	// Save inserts or replaces the record with the same schema, path and
	// site. ID, CreatedAt and UpdatedAt are set by the store.
	Save(ctx context.Context, rec *StoredRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*StoredRecord, error)

	// Lookup returns the record for a path, preferring the site-specific
	// record and falling back to the site-less one. Returns an error wrapping
	// ErrRecordNotFound when neither exists.
	Lookup(ctx context.Context, schema, path, site string) (*StoredRecord, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// List returns records matching the query ordered by schema, path, site.
	List(ctx context.Context, query *RecordQuery) ([]*StoredRecord, error)

	// Close releases resources. The store must not be used afterwards.
	Close() error
}

// StoreDriver is a factory for record stores. Drivers register themselves
// during init().
type StoreDriver interface {
	Open(connectionString string) (RecordStore, error)
}

// Store driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a driver by name.
// Panics if the driver is nil or the name is taken.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgStoreDriverRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a record store with the named driver.
//
//	store, err := seometa.OpenStore("memory", "")
//	store, err := seometa.OpenStore("postgres", "postgres://localhost/seo?sslmode=disable")
func OpenStore(driverName, connectionString string) (RecordStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStoreDrivers returns the registered driver names, sorted.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// copyStoredRecord returns a deep copy so callers never share maps with a store.
func copyStoredRecord(r *StoredRecord) *StoredRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Values = maps.Clone(r.Values)
	c.Attributes = maps.Clone(r.Attributes)
	return &c
}

func validateStoredRecord(r *StoredRecord) error {
	if r == nil || r.Schema == "" || r.Path == "" {
		return NewStorageError(ErrMsgInvalidRecord, nil)
	}
	return nil
}
