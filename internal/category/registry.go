package category

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry caches chart of accounts tables per variant. A variant whose
// source fails is served with the fallback variant instead; the fallback
// is cached under the requested name only for shipped variants.
type Registry struct {
	source   Source
	fallback Variant

	mu     sync.RWMutex
	tables map[Variant]*Table
}

func NewRegistry(source Source, fallback Variant) *Registry {
	return &Registry{
		source:   source,
		fallback: fallback,
		tables:   make(map[Variant]*Table),
	}
}

// Fallback returns the variant used when a requested one cannot be loaded.
func (r *Registry) Fallback() Variant {
	return r.fallback
}

// Table returns the table for variant, loading it on first use.
// Concurrent first loads of the same variant may both hit the source;
// the last one stored wins, which is harmless since content is deterministic.
func (r *Registry) Table(ctx context.Context, variant Variant) (*Table, error) {
	if t, ok := r.cached(variant); ok {
		return t, nil
	}

	t, err := r.source.Load(ctx, variant)
	if err == nil {
		r.store(variant, t)
		return t, nil
	}

	if variant == r.fallback {
		return nil, fmt.Errorf("loading default chart %s: %w", variant, err)
	}

	slog.Warn("chart of accounts unavailable, using default",
		"variant", variant, "default", r.fallback, "error", err)

	t, err = r.Table(ctx, r.fallback)
	if err != nil {
		return nil, err
	}

	// Names outside the shipped variants are not cached.
	if slices.Contains(Variants(), variant) {
		r.store(variant, t)
	}

	return t, nil
}

// Preload loads the given variants concurrently.
func (r *Registry) Preload(ctx context.Context, variants ...Variant) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, v := range variants {
		g.Go(func() error {
			_, err := r.Table(ctx, v)
			return err
		})
	}

	return g.Wait()
}

func (r *Registry) cached(variant Variant) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[variant]

	return t, ok
}

func (r *Registry) store(variant Variant, t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[variant] = t
}
