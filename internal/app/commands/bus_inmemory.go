package commands

import (
	"context"
	"fmt"
)

type dispatchFunc func(ctx context.Context, cmd Command) (any, error)

// InMemoryBus routes commands to handlers registered under their key. All
// registration happens during wiring in main, before the first dispatch,
// so the route map needs no locking.
type InMemoryBus struct {
	routes map[string]dispatchFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{routes: make(map[string]dispatchFunc)}
}

// Dispatch executes the handler registered for the command's key.
func (b *InMemoryBus) Dispatch(ctx context.Context, cmd Command) (any, error) {
	dispatch, ok := b.routes[cmd.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, cmd.Key())
	}
	return dispatch(ctx, cmd)
}

func (b *InMemoryBus) register(key string, dispatch dispatchFunc) {
	if key == "" {
		panic("commands: registration with empty key")
	}
	if _, exists := b.routes[key]; exists {
		panic("commands: duplicate registration for " + key)
	}
	b.routes[key] = dispatch
}

// RegisterHandler binds a typed handler to a command key. Empty and
// duplicate keys are wiring bugs and panic at startup.
func RegisterHandler[C Command, R any](bus *InMemoryBus, key string, handler Handler[C, R]) {
	if bus == nil {
		panic("commands: nil bus")
	}
	bus.register(key, func(ctx context.Context, raw Command) (any, error) {
		cmd, ok := raw.(C)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, key)
		}
		return handler.Handle(ctx, cmd)
	})
}
