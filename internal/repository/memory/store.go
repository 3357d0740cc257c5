package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// Store keeps items in process memory, in insertion order. It lives as long
// as the process does.
type Store struct {
	mu    sync.RWMutex
	items []models.Item
	newID func() string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// List returns a copy of the collection.
func (s *Store) List(_ context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Create appends a new item with a fresh id.
func (s *Store) Create(_ context.Context, input models.ItemInput) (models.Item, error) {
	item := models.NewItem(s.newID(), input)

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	return item, nil
}

// Delete removes every item with the given id. Missing ids are not an error.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	// clear the tail so removed items can be collected
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = models.Item{}
	}
	s.items = kept
	return nil
}

// Seed loads items when the store is empty.
func (s *Store) Seed(_ context.Context, items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) > 0 {
		return nil
	}
	s.items = append(s.items, items...)
	return nil
}
