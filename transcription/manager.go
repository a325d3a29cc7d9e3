package transcription

import (
	"context"

	"github.com/kbukum/localai-stt/provider"
)

// Manager picks a transcription provider per request.
type Manager = provider.Manager[Provider]

// ManagerOption configures NewManager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	selector provider.Selector[Provider]
}

// WithSelector replaces the default first-available-by-name selection.
func WithSelector(s provider.Selector[Provider]) ManagerOption {
	return func(o *managerOptions) { o.selector = s }
}

// WithPriority tries providers in the given order and uses the first
// available one.
func WithPriority(names ...string) ManagerOption {
	return WithSelector(&provider.PrioritySelector[Provider]{Priority: names})
}

// NewManager creates an empty manager. Register factories on it, then
// let a Component initialize them.
func NewManager(opts ...ManagerOption) *Manager {
	o := &managerOptions{selector: &provider.HealthCheckSelector[Provider]{}}
	for _, opt := range opts {
		opt(o)
	}
	return provider.NewManager(provider.NewRegistry[Provider](), o.selector)
}

// Transcribe sends req to the provider m selects for ctx.
func Transcribe(ctx context.Context, m *Manager, req TranscriptionRequest) (*TranscriptionResponse, error) {
	p, err := m.Get(ctx)
	if err != nil {
		return nil, err
	}
	return p.Transcribe(ctx, req)
}
