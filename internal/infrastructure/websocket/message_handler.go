package websocket

import (
	"encoding/json"
	"time"

	"agrolink/pkg/logger"
)

const (
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeNotification = "notification"
	MessageTypeError        = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HandleClientMessage answers the few frames a client may send. The channel
// is server-push only, so anything but a ping is rejected.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		m.sendToClient(client, errorMessage("Invalid message format"))
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Data:      map[string]string{"status": "alive"},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	default:
		logger.Debug("WebSocket: unknown message type '%s' from user %d", wsMessage.Type, client.UserID)
		m.sendToClient(client, errorMessage("Unknown message type"))
	}
}

func errorMessage(message string) WSMessage {
	return WSMessage{
		Type:      MessageTypeError,
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("WebSocket: failed to encode %s message: %v", message.Type, err)
		return
	}

	// Send is closed once the client leaves the registry.
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if _, ok := m.clients[client.UserID][client]; !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket send buffer full for user %d", client.UserID)
	}
}
