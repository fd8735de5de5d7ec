package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrolink/internal/domain/entity"
)

func startManager(t *testing.T) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := NewManager()
	m.Start(ctx)
	return m
}

func TestManager_PublishNotificationReachesEveryConnection(t *testing.T) {
	m := startManager(t)

	first := &Client{UserID: 7, Send: make(chan []byte, 1)}
	second := &Client{UserID: 7, Send: make(chan []byte, 1)}
	other := &Client{UserID: 8, Send: make(chan []byte, 1)}
	m.Register(first)
	m.Register(second)
	m.Register(other)

	require.Eventually(t, func() bool { return m.ConnectionCount(7) == 2 }, time.Second, 10*time.Millisecond)

	m.PublishNotification(context.Background(), &entity.Notification{
		ID:      1,
		UserID:  7,
		Title:   "Nova solicitação",
		Message: "Você recebeu uma nova solicitação de serviço",
		Type:    entity.NotificationTypeBooking,
	})

	for _, c := range []*Client{first, second} {
		select {
		case payload := <-c.Send:
			var msg struct {
				Type string              `json:"type"`
				Data entity.Notification `json:"data"`
			}
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, MessageTypeNotification, msg.Type)
			assert.Equal(t, int64(1), msg.Data.ID)
		default:
			t.Fatal("expected a pushed notification")
		}
	}

	assert.Empty(t, other.Send)
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	m := startManager(t)

	client := &Client{UserID: 3, Send: make(chan []byte, 1)}
	m.Register(client)
	m.Unregister(client)

	require.Eventually(t, func() bool { return m.ConnectionCount(3) == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)

	assert.Equal(t, 0, m.SendToUser(3, []byte("x")))
}

func TestManager_FullBufferDropsMessage(t *testing.T) {
	m := startManager(t)

	client := &Client{UserID: 4, Send: make(chan []byte, 1)}
	m.Register(client)
	require.Eventually(t, func() bool { return m.ConnectionCount(4) == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, m.SendToUser(4, []byte("a")))
	assert.Equal(t, 0, m.SendToUser(4, []byte("b")))
}

func TestManager_HandleClientMessagePing(t *testing.T) {
	m := startManager(t)

	client := &Client{UserID: 5, Send: make(chan []byte, 1)}
	m.Register(client)
	require.Eventually(t, func() bool { return m.ConnectionCount(5) == 1 }, time.Second, 10*time.Millisecond)

	m.HandleClientMessage(client, []byte(`{"type":"ping"}`))

	var reply WSMessage
	require.NoError(t, json.Unmarshal(<-client.Send, &reply))
	assert.Equal(t, MessageTypePong, reply.Type)

	m.HandleClientMessage(client, []byte(`not json`))
	require.NoError(t, json.Unmarshal(<-client.Send, &reply))
	assert.Equal(t, MessageTypeError, reply.Type)
}

func TestManager_ShutdownReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)

	client := &Client{UserID: 6, Send: make(chan []byte, 1)}
	require.True(t, m.Register(client))
	require.Eventually(t, func() bool { return m.ConnectionCount(6) == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	// closeAll closes Send, which is what ends WritePump.
	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client was not closed on shutdown")
	}

	// ReadPump unregisters on its way out; that must not block once the loop is gone.
	unregistered := make(chan struct{})
	go func() {
		m.Unregister(client)
		close(unregistered)
	}()
	select {
	case <-unregistered:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after shutdown")
	}

	late := &Client{UserID: 6, Send: make(chan []byte, 1)}
	assert.False(t, m.Register(late))
	assert.Equal(t, 0, m.ConnectionCount(6))
}
