package provider

import "context"

// Provider is the base interface every swappable backend implements.
type Provider interface {
	// Name returns the provider's registry name.
	Name() string
	// IsAvailable reports whether the provider can take requests now.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from a loose configuration map,
// typically decoded from YAML or assembled by a CLI.
type Factory[T Provider] func(cfg map[string]any) (T, error)
