package storage

import (
	"context"
	"slices"
	"sync"

	"mercator-hq/folio/pkg/journal"
)

// MemoryStorage implements journal.Storage in memory.
type MemoryStorage struct {
	records map[string]*journal.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*journal.Record),
	}
}

// Store saves a copy of record.
func (s *MemoryStorage) Store(ctx context.Context, record *journal.Record) error {
	if record == nil || record.ID == "" {
		return journal.NewStorageError("memory", "store", errRecordID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = copyRecord(record)
	return nil
}

// Query returns copies of the matching records, sorted by time.
func (s *MemoryStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*journal.Record, 0)
	for _, record := range s.records {
		if query.Matches(record) {
			results = append(results, copyRecord(record))
		}
	}

	slices.SortFunc(results, func(a, b *journal.Record) int {
		c := a.Time.Compare(b.Time)
		if c == 0 {
			c = compareStrings(a.ID, b.ID)
		}
		if !query.Ascending() {
			c = -c
		}
		return c
	})

	if query == nil {
		return results, nil
	}

	start := query.Offset
	if start > len(results) {
		return []*journal.Record{}, nil
	}
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results, nil
}

// Count returns the number of matching records.
func (s *MemoryStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if query.Matches(record) {
			count++
		}
	}
	return count, nil
}

// Delete removes the matching records.
func (s *MemoryStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if query.Matches(record) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Backend returns "memory".
func (s *MemoryStorage) Backend() string {
	return "memory"
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

func copyRecord(r *journal.Record) *journal.Record {
	c := *r
	c.Codes = slices.Clone(r.Codes)
	return &c
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
