package order

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemStore is an in-memory Store implementation used in tests and when the
// service runs without a database.
type MemStore struct {
	mu       sync.RWMutex
	byID     map[string]*Order
	byNumber map[string]string // order number -> id
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID:     make(map[string]*Order),
		byNumber: make(map[string]string),
	}
}

// Put inserts or replaces an order. Intended for test seeding.
func (s *MemStore) Put(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[o.ID] = o.Clone()
	s.byNumber[o.OrderNumber] = o.ID
}

// GetByID returns a copy of the order with the given id.
func (s *MemStore) GetByID(ctx context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return o.Clone(), nil
}

// GetByNumber returns a copy of the order with the given order number.
func (s *MemStore) GetByNumber(ctx context.Context, number string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, number)
	}
	return s.byID[id].Clone(), nil
}

// Patch applies a partial update to the order with the given id.
func (s *MemStore) Patch(ctx context.Context, id string, patch Patch) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.patchLocked(o, patch)
}

// PatchByNumber applies a partial update keyed by order number.
func (s *MemStore) PatchByNumber(ctx context.Context, number string, patch Patch) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, number)
	}
	return s.patchLocked(s.byID[id], patch)
}

func (s *MemStore) patchLocked(o *Order, patch Patch) (*Order, error) {
	// Apply to a copy first so a rejected transition leaves the stored
	// order untouched.
	updated := o.Clone()
	if err := updated.apply(patch); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	s.byID[updated.ID] = updated
	return updated.Clone(), nil
}

var _ Store = (*MemStore)(nil)
