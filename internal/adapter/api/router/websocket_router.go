package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the live notification stream. Auth is done in
// the handler from the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws/notifications", wsHandler.HandleNotifications)
}
