package provider

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// Selector chooses the provider that serves a call.
type Selector[T Provider] interface {
	Select(ctx context.Context, providers map[string]T) (T, error)
}

// PrioritySelector walks Priority and returns the first provider that is
// initialized and available. Names missing from the set are skipped.
type PrioritySelector[T Provider] struct {
	Priority []string
}

func (s *PrioritySelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range s.Priority {
		if p, ok := providers[name]; ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("none of %v is available", s.Priority)
}

// HealthCheckSelector returns the available provider whose name sorts
// first, so the choice is stable across calls.
type HealthCheckSelector[T Provider] struct{}

func (s *HealthCheckSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range slices.Sorted(maps.Keys(providers)) {
		if p := providers[name]; p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider among %d initialized", len(providers))
}
