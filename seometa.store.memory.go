package seometa

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRecordStore is an in-memory RecordStore for tests and development.
// All data is lost when the process terminates.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]*StoredRecord // id -> record
	byKey   map[string]string        // schema/path/site -> id
	closed  bool
}

// MemoryStoreDriver is the driver for creating MemoryRecordStore instances.
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryRecordStore. The connection string is ignored.
func (d *MemoryStoreDriver) Open(connectionString string) (RecordStore, error) {
	return NewMemoryRecordStore(), nil
}

// NewMemoryRecordStore creates an empty in-memory store.
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make(map[string]*StoredRecord),
		byKey:   make(map[string]string),
	}
}

func recordKey(schema, path, site string) string {
	return schema + "\x00" + path + "\x00" + site
}

// Save implements RecordStore.
func (s *MemoryRecordStore) Save(ctx context.Context, rec *StoredRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredRecord(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	now := time.Now()
	key := recordKey(rec.Schema, rec.Path, rec.Site)
	if id, exists := s.byKey[key]; exists {
		existing := s.records[id]
		rec.ID = id
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	s.records[rec.ID] = copyStoredRecord(rec)
	s.byKey[key] = rec.ID
	return nil
}

// Get implements RecordStore.
func (s *MemoryRecordStore) Get(ctx context.Context, id string) (*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	rec, ok := s.records[id]
	if !ok {
		return nil, NewRecordIDNotFoundError(id)
	}
	return copyStoredRecord(rec), nil
}

// Lookup implements RecordStore.
func (s *MemoryRecordStore) Lookup(ctx context.Context, schema, path, site string) (*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	candidates := []string{recordKey(schema, path, site)}
	if site != "" {
		candidates = append(candidates, recordKey(schema, path, ""))
	}
	for _, key := range candidates {
		if id, ok := s.byKey[key]; ok {
			return copyStoredRecord(s.records[id]), nil
		}
	}
	return nil, NewRecordNotFoundError(schema, path, site)
}

// Delete implements RecordStore.
func (s *MemoryRecordStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	rec, ok := s.records[id]
	if !ok {
		return NewRecordIDNotFoundError(id)
	}
	delete(s.byKey, recordKey(rec.Schema, rec.Path, rec.Site))
	delete(s.records, id)
	return nil
}

// List implements RecordStore.
func (s *MemoryRecordStore) List(ctx context.Context, query *RecordQuery) ([]*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == nil {
		query = &RecordQuery{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	var out []*StoredRecord
	for _, rec := range s.records {
		if query.Schema != "" && rec.Schema != query.Schema {
			continue
		}
		if query.Site != "" && rec.Site != query.Site {
			continue
		}
		if query.PathPrefix != "" && !strings.HasPrefix(rec.Path, query.PathPrefix) {
			continue
		}
		out = append(out, copyStoredRecord(rec))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Schema != b.Schema {
			return a.Schema < b.Schema
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Site < b.Site
	})

	if query.Offset > 0 {
		if query.Offset >= len(out) {
			return []*StoredRecord{}, nil
		}
		out = out[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(out) {
		out = out[:query.Limit]
	}
	return out, nil
}

// Close implements RecordStore.
func (s *MemoryRecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.records = nil
	s.byKey = nil
	return nil
}
