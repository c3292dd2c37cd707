package history

import (
	"context"
	"sync"
)

const DefaultInMemoryCapacity = 500

// InMemoryStore keeps the most recent records in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultInMemoryCapacity
	}
	return &InMemoryStore{capacity: capacity}
}

func (s *InMemoryStore) Save(_ context.Context, record Record) error {
	record = prepare(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	if over := len(s.records) - s.capacity; over > 0 {
		s.records = append(s.records[:0:0], s.records[over:]...)
	}
	return nil
}

func (s *InMemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]Record, 0, limit)
	for i := len(s.records) - 1; i >= len(s.records)-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *InMemoryStore) Mode() string { return "in-memory" }

func (s *InMemoryStore) Close() error { return nil }
