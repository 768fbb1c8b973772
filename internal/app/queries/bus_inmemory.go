package queries

import (
	"context"
	"fmt"
)

type askFunc func(ctx context.Context, q Query) (any, error)

// InMemoryBus routes queries to handlers registered under their key; like
// the command bus it is populated once during wiring and read-only after.
type InMemoryBus struct {
	routes map[string]askFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{routes: make(map[string]askFunc)}
}

// Ask executes the handler registered for the query's key.
func (b *InMemoryBus) Ask(ctx context.Context, query Query) (any, error) {
	ask, ok := b.routes[query.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, query.Key())
	}
	return ask(ctx, query)
}

func (b *InMemoryBus) register(key string, ask askFunc) {
	if key == "" {
		panic("queries: registration with empty key")
	}
	if _, exists := b.routes[key]; exists {
		panic("queries: duplicate registration for " + key)
	}
	b.routes[key] = ask
}

// RegisterHandler binds a typed handler to a query key.
func RegisterHandler[Q Query, R any](bus *InMemoryBus, key string, handler Handler[Q, R]) {
	if bus == nil {
		panic("queries: nil bus")
	}
	bus.register(key, func(ctx context.Context, raw Query) (any, error) {
		q, ok := raw.(Q)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, key)
		}
		return handler.Handle(ctx, q)
	})
}
