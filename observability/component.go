package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/localai-stt/component"
	"github.com/kbukum/localai-stt/logger"
)

// ComponentName is the registry name of the telemetry component.
const ComponentName = "observability"

// Component installs the tracer and meter providers on Start and flushes
// them on Stop. When the config is disabled it only provides Metrics on
// the global (no-op) meter.
type Component struct {
	cfg            Config
	serviceName    string
	serviceVersion string
	environment    string

	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a telemetry component for the given service identity.
func NewComponent(cfg Config, serviceName, serviceVersion, environment string) *Component {
	cfg.ApplyDefaults()
	return &Component{
		cfg:            cfg,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		environment:    environment,
	}
}

// Name implements component.Component.
func (c *Component) Name() string { return ComponentName }

// Start implements component.Component.
func (c *Component) Start(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	if c.cfg.Enabled {
		tp, err := InitTracer(ctx, c.cfg.TracerConfig(c.serviceName, c.serviceVersion, c.environment))
		if err != nil {
			return err
		}
		c.tp = tp

		mp, err := InitMeter(ctx, c.cfg.MeterConfig(c.serviceName, c.serviceVersion, c.environment))
		if err != nil {
			_ = tp.Shutdown(ctx)
			c.tp = nil
			return err
		}
		c.mp = mp
	} else {
		logger.Get(ComponentName).Debug("telemetry export disabled")
	}

	metrics, err := NewMetrics(Meter(c.serviceName))
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	c.metrics = metrics
	return nil
}

// Stop flushes and shuts down the providers installed by Start.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
		c.mp = nil
	}
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
		c.tp = nil
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (c *Component) Health(context.Context) component.Health {
	switch {
	case !c.cfg.Enabled:
		return component.Health{Name: ComponentName, Status: component.StatusHealthy, Message: "export disabled"}
	case c.tp == nil:
		return component.Health{Name: ComponentName, Status: component.StatusUnhealthy, Message: "not started"}
	default:
		return component.Health{Name: ComponentName, Status: component.StatusHealthy, Message: c.cfg.Endpoint}
	}
}

// Metrics returns the instruments created on Start, or nil before Start.
func (c *Component) Metrics() *Metrics {
	return c.metrics
}
