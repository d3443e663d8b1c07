package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	userID := uuid.New()
	c := &Client{hub: hub, userID: userID, send: make(chan []byte, 1)}
	stranger := &Client{hub: hub, userID: uuid.New(), send: make(chan []byte, 1)}
	require.True(t, hub.Register(c))
	require.True(t, hub.Register(stranger))
	assert.Eventually(t, func() bool { return hub.ConnectedUsers() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.BroadcastToUser(userID, "booking.accepted", map[string]string{"status": "ACCEPTED"}))

	select {
	case raw := <-c.send:
		var env struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "booking.accepted", env.Type)
		assert.Equal(t, "ACCEPTED", env.Data["status"])
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}

	select {
	case <-stranger.send:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{hub: hub, userID: uuid.New(), send: make(chan []byte, 1)}
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectedUsers())
}

func TestHub_StoppedRejectsRegistration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := &Client{hub: hub, userID: uuid.New(), send: make(chan []byte, 1)}
	require.True(t, hub.Register(c))

	cancel()
	<-stopped

	_, open := <-c.send
	assert.False(t, open)
	assert.False(t, hub.Register(&Client{hub: hub, userID: uuid.New(), send: make(chan []byte)}))

	// Не должно блокироваться после остановки.
	hub.Unregister(c)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.BroadcastToUser(uuid.New(), "noop", nil))
}
