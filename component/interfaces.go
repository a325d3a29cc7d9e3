package component

import "context"

// HealthStatus is the coarse state reported by Health.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	// StatusDegraded means the component runs but cannot serve everything
	// it was configured for.
	StatusDegraded HealthStatus = "degraded"
)

// Health is one component's entry in Registry.HealthAll.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a part of the process with a start and a stop, such as the
// telemetry exporters or the transcription providers. Name must be unique
// within a Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	// Stop releases what Start acquired. ctx carries the stop deadline.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}
