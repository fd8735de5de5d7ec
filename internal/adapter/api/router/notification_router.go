package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/api/notifications")
	notifications.Use(authMiddleware.Authenticate)

	notifications.GET("/:userId", notificationHandler.ListNotifications)
	notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
}
