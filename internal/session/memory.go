package session

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps records in process memory. Sessions do not survive a
// restart.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: map[string]Record{}, now: time.Now}
}

// Get returns the record for id.
func (m *MemoryBackend) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok || record.Expired(m.now()) {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// Put stores record, replacing any record with the same id.
func (m *MemoryBackend) Put(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

// Delete removes the record for id.
func (m *MemoryBackend) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

// DeleteExpired purges records that expired at or before now.
func (m *MemoryBackend) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, record := range m.records {
		if record.Expired(now) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored records, expired ones included.
func (m *MemoryBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Close releases nothing; it exists to satisfy Backend.
func (m *MemoryBackend) Close() error {
	return nil
}

var (
	_ Backend = (*MemoryBackend)(nil)
	_ Sweeper = (*MemoryBackend)(nil)
)
