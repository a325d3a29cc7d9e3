package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/localai-stt/component"
)

// Manager runs a group of test components through the same
// component.Registry the binary uses, so start and stop order match
// production. ResetAll adds the test-only step.
type Manager struct {
	ctx        context.Context
	registry   *component.Registry
	mu         sync.RWMutex
	components []TestComponent
}

// NewManager creates an empty manager whose lifecycle calls use ctx.
func NewManager(ctx context.Context) *Manager {
	return &Manager{ctx: ctx, registry: component.NewRegistry()}
}

// Add registers c. Names must be unique.
func (m *Manager) Add(c TestComponent) error {
	if err := m.registry.Register(c); err != nil {
		return err
	}
	m.mu.Lock()
	m.components = append(m.components, c)
	m.mu.Unlock()
	return nil
}

// Get returns the component registered under name, or nil.
func (m *Manager) Get(name string) TestComponent {
	if c, ok := m.registry.Get(name).(TestComponent); ok {
		return c
	}
	return nil
}

// StartAll starts components in the order they were added.
func (m *Manager) StartAll() error {
	return m.registry.StartAll(m.ctx)
}

// StopAll stops started components in reverse order. Failures are joined.
func (m *Manager) StopAll() error {
	return m.registry.StopAll(m.ctx)
}

// ResetAll resets components in order and stops at the first failure.
func (m *Manager) ResetAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.components {
		if err := c.Reset(m.ctx); err != nil {
			return fmt.Errorf("reset %s: %w", c.Name(), err)
		}
	}
	return nil
}

// Cleanup is StopAll, shaped for defer and t.Cleanup.
func (m *Manager) Cleanup() error {
	return m.StopAll()
}
