package provider

import "context"

// Closeable is implemented by providers that hold resources such as idle
// HTTP connections. Manager.Close calls it for every initialized provider.
type Closeable interface {
	Close(ctx context.Context) error
}
