package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

// Store keeps batches in process memory. Batches are copied on the way in
// and out so callers never share state with the store.
type Store struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*transaction.Batch
}

func New() *Store {
	return &Store{batches: make(map[uuid.UUID]*transaction.Batch)}
}

func (s *Store) CreateBatch(_ context.Context, b *transaction.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[b.ID]; ok {
		return fmt.Errorf("creating batch %s: already exists", b.ID)
	}

	s.batches[b.ID] = b.Clone()

	return nil
}

func (s *Store) GetBatch(_ context.Context, id uuid.UUID) (*transaction.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return nil, fmt.Errorf("batch %s: %w", id, transaction.ErrNotFound)
	}

	return b.Clone(), nil
}

func (s *Store) UpdateBatch(_ context.Context, b *transaction.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[b.ID]; !ok {
		return fmt.Errorf("batch %s: %w", b.ID, transaction.ErrNotFound)
	}

	s.batches[b.ID] = b.Clone()

	return nil
}

// ListBatches returns all batches, newest first.
func (s *Store) ListBatches(_ context.Context) ([]*transaction.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*transaction.Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, b.Clone())
	}

	slices.SortFunc(out, func(a, b *transaction.Batch) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return out, nil
}

func (s *Store) DeleteBatch(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[id]; !ok {
		return fmt.Errorf("batch %s: %w", id, transaction.ErrNotFound)
	}

	delete(s.batches, id)

	return nil
}
