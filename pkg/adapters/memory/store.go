package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/exinc/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Record),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.Record) error {
	copied := copyRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}

	// Copy on read so callers can't mutate the stored record through the pointer
	return copyRecord(record), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func copyRecord(r *domain.Record) *domain.Record {
	c := *r
	c.Result.Diagnostics = slices.Clone(r.Result.Diagnostics)
	if r.Result.Failure != nil {
		failure := *r.Result.Failure
		c.Result.Failure = &failure
	}
	return &c
}
