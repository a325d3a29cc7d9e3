// Package component defines lifecycle-managed parts of a process and a
// registry that starts them in order and stops them in reverse.
//
// # Interfaces
//
//   - Component: Name/Start/Stop/Health
//   - Registry: ordered StartAll, reverse StopAll, HealthAll
package component
