package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	Value string
}

func (echoCommand) Key() string { return "test.echo" }

type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, cmd echoCommand) (string, error) {
	return cmd.Value, nil
}

func TestInMemoryBusDispatch(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[echoCommand, string](bus, echoCommand{}.Key(), echoHandler{})

	out, err := Dispatch[echoCommand, string](context.Background(), bus, echoCommand{Value: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestInMemoryBusUnknownKey(t *testing.T) {
	bus := NewInMemoryBus()
	_, err := Dispatch[echoCommand, string](context.Background(), bus, echoCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestInMemoryBusDuplicateRegistrationPanics(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[echoCommand, string](bus, echoCommand{}.Key(), echoHandler{})
	assert.Panics(t, func() {
		RegisterHandler[echoCommand, string](bus, echoCommand{}.Key(), echoHandler{})
	})
}
