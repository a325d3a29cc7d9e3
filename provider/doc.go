// Package provider is a small generic framework for swappable backends.
//
// A Provider has a name and an availability check. Factories build
// providers from loose config maps; a Registry holds factories and
// instances; a Manager initializes instances and picks one per call
// through a Selector.
//
// RequestResponse[I, O] is the single interaction shape used here: one
// input, one output. Func turns a plain function into one, Adapt maps
// between domain and backend types, and Middleware wraps it:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("localai-stt"),
//	)(raw)
package provider
