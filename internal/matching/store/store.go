package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/euer/internal/matching"
)

// Store keeps learned mappings in memory.
type Store struct {
	mu       sync.RWMutex
	mappings []matching.Mapping
	now      func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// FindMatch returns the category of the longest pattern contained in
// counterparty; the newest mapping wins among equally long patterns.
func (s *Store) FindMatch(_ context.Context, counterparty string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *matching.Mapping

	for i := range s.mappings {
		m := &s.mappings[i]
		if !strings.Contains(counterparty, m.Pattern) {
			continue
		}

		if best == nil || len(m.Pattern) > len(best.Pattern) ||
			len(m.Pattern) == len(best.Pattern) && !m.CreatedAt.Before(best.CreatedAt) {
			best = m
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Category, nil
}

// CreateMapping stores a mapping, replacing one with the same pattern.
func (s *Store) CreateMapping(_ context.Context, pattern, categoryKey string) error {
	if pattern == "" {
		return fmt.Errorf("creating mapping: empty pattern")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := matching.Mapping{Pattern: pattern, Category: categoryKey, CreatedAt: s.now()}

	if i := s.index(pattern); i >= 0 {
		s.mappings[i] = m
		return nil
	}

	s.mappings = append(s.mappings, m)

	return nil
}

func (s *Store) ListMappings(_ context.Context) ([]matching.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.mappings)
	slices.SortFunc(out, func(a, b matching.Mapping) int { return strings.Compare(a.Pattern, b.Pattern) })

	return out, nil
}

func (s *Store) DeleteMapping(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(pattern)
	if i < 0 {
		return fmt.Errorf("mapping %q: %w", pattern, matching.ErrNotFound)
	}

	s.mappings = slices.Delete(s.mappings, i, i+1)

	return nil
}

func (s *Store) index(pattern string) int {
	return slices.IndexFunc(s.mappings, func(m matching.Mapping) bool { return m.Pattern == pattern })
}
