package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/middleware"
	ws "agrolink/internal/infrastructure/websocket"
	"agrolink/pkg/logger"
	"agrolink/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	upgrader       gorillaws.Upgrader
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers cannot set headers on the upgrade, so the token comes in the query.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleNotifications upgrades to a websocket that receives the caller's notifications.
func (h *WebSocketHandler) HandleNotifications(c echo.Context) error {
	userID, err := h.authMiddleware.VerifyToken(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logger.Warn("WebSocket upgrade failed for user %d: %v", userID, err)
		return nil
	}

	client := ws.NewClient(userID, conn)
	if !h.wsManager.Register(client) {
		logger.Debug("WebSocket manager stopped, closing connection for user %d", userID)
		return conn.Close()
	}

	go client.WritePump()
	go client.ReadPump(h.wsManager)

	return nil
}
