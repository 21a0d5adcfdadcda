package ws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"secrethitler/internal/engine"
	"secrethitler/internal/store"
)

func testHub() *Hub {
	return NewHub(store.NewGameStore(), zap.NewNop().Sugar(), nil)
}

// TestReconnectRacingBroadcast covers the hand-off between a replaced
// session and an in-flight fanout: a goroutine holding a stale client
// snapshot may still enqueue after a reconnect replaced and shut down
// that client. The message must be dropped, never sent on the closed
// channel.
func TestReconnectRacingBroadcast(t *testing.T) {
	h := testHub()

	first := newClient(h, nil, "ABC234", "alice")
	h.register(first)

	stale := h.gameClients("ABC234")
	require.Len(t, stale, 1)
	require.Same(t, first, stale[0])

	// Reconnect: the same player registers a fresh session, which
	// shuts the old one down.
	second := newClient(h, nil, "ABC234", "alice")
	h.register(second)
	assert.True(t, first.closed)

	require.NotPanics(t, func() {
		for _, c := range stale {
			c.enqueue([]byte(`{"type":"game_state"}`))
		}
	})

	// The replacement session still receives normally.
	second.enqueue([]byte(`{"type":"game_state"}`))
	assert.Len(t, second.send, 1)
}

func TestClientShutdownIsIdempotent(t *testing.T) {
	h := testHub()
	c := newClient(h, nil, "ABC234", "alice")
	h.register(c)

	require.NotPanics(t, func() {
		c.shutdown()
		c.shutdown()
		c.enqueue([]byte("late"))
	})
}

// TestUnregisterReportsCurrentSession pins down the reconnect teardown
// contract: the replaced session's exit is not a departure and must not
// remove the player's new session or free their seat.
func TestUnregisterReportsCurrentSession(t *testing.T) {
	h := testHub()

	first := newClient(h, nil, "ABC234", "alice")
	h.register(first)
	second := newClient(h, nil, "ABC234", "alice")
	h.register(second)

	assert.False(t, h.unregister(first), "a replaced session is no longer current")
	require.Len(t, h.gameClients("ABC234"), 1, "the reconnected session survives")

	assert.True(t, h.unregister(second))
	assert.Empty(t, h.gameClients("ABC234"))
	assert.False(t, h.unregister(second), "a second teardown is a no-op")
}

func TestErrorMessageMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{engine.ErrInvalidPhase, "that action is not allowed in the current phase"},
		{engine.ErrInvalidActor, "you are not allowed to perform that action"},
		{engine.ErrInvalidTarget, "invalid target"},
		{engine.ErrInvalidIndex, "invalid policy index"},
		{engine.ErrInvalidAction, "that executive action is not available"},
		{engine.ErrGameFull, "the game is full"},
		{engine.ErrNameTaken, "that name is already taken"},
		{engine.ErrRosterSize, "the game needs between 5 and 10 players"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorMessage(tt.err))
	}
}

func TestErrorMessageMatchesWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("casting vote: %w", engine.ErrInvalidPhase)
	assert.Equal(t, "that action is not allowed in the current phase", errorMessage(wrapped))
}
