package transcription

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/localai-stt/component"
)

// ComponentName is the registry name of the transcription component.
const ComponentName = "transcription"

// Component initializes configured providers on Start and closes them on
// Stop.
type Component struct {
	manager     *Manager
	configs     map[string]map[string]any
	defaultName string
}

var _ component.Component = (*Component)(nil)

// NewComponent wraps manager. configs maps provider names to factory
// config; defaultName, when set, pins Manager.Get to that provider.
func NewComponent(manager *Manager, configs map[string]map[string]any, defaultName string) *Component {
	return &Component{manager: manager, configs: configs, defaultName: defaultName}
}

// Name implements component.Component.
func (c *Component) Name() string { return ComponentName }

// Start initializes providers in name order.
func (c *Component) Start(ctx context.Context) error {
	names := make([]string, 0, len(c.configs))
	for name := range c.configs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := c.manager.Initialize(name, c.configs[name]); err != nil {
			return err
		}
	}
	if c.defaultName != "" {
		if err := c.manager.SetDefault(c.defaultName); err != nil {
			return fmt.Errorf("transcription: %w", err)
		}
	}
	return nil
}

// Stop closes every initialized provider.
func (c *Component) Stop(ctx context.Context) error {
	return c.manager.Close(ctx)
}

// Health is unhealthy until at least one provider is initialized.
func (c *Component) Health(context.Context) component.Health {
	available := c.manager.Available()
	if len(available) == 0 {
		return component.Health{Name: ComponentName, Status: component.StatusUnhealthy, Message: "no providers initialized"}
	}
	return component.Health{Name: ComponentName, Status: component.StatusHealthy, Message: strings.Join(available, ",")}
}

// Manager returns the wrapped provider manager.
func (c *Component) Manager() *Manager {
	return c.manager
}
