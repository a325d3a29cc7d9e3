package provider

import "context"

// Adapt exposes backend, which speaks BI/BO, as a RequestResponse[I, O]
// registered under name. toBackend runs before every call and fromBackend
// only after a successful one; their errors are returned unwrapped.
func Adapt[I, O, BI, BO any](
	backend RequestResponse[BI, BO],
	name string,
	toBackend func(ctx context.Context, input I) (BI, error),
	fromBackend func(output BO) (O, error),
) RequestResponse[I, O] {
	return &adapter[I, O, BI, BO]{backend: backend, name: name, toBackend: toBackend, fromBackend: fromBackend}
}

type adapter[I, O, BI, BO any] struct {
	backend     RequestResponse[BI, BO]
	name        string
	toBackend   func(ctx context.Context, input I) (BI, error)
	fromBackend func(output BO) (O, error)
}

func (a *adapter[I, O, BI, BO]) Name() string { return a.name }

func (a *adapter[I, O, BI, BO]) IsAvailable(ctx context.Context) bool {
	return a.backend.IsAvailable(ctx)
}

func (a *adapter[I, O, BI, BO]) Execute(ctx context.Context, input I) (O, error) {
	in, err := a.toBackend(ctx, input)
	if err != nil {
		var zero O
		return zero, err
	}
	out, err := a.backend.Execute(ctx, in)
	if err != nil {
		var zero O
		return zero, err
	}
	return a.fromBackend(out)
}
