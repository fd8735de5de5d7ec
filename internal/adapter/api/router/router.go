package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/middleware"
)

// Setup registers the REST API. handler.Setup must have run first.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	SetupAuthRouter(e, authMiddleware, rateLimiter)
	SetupUserRouter(e, authMiddleware)
	SetupProviderRouter(e, authMiddleware)
	SetupProducerRouter(e, authMiddleware)
	SetupBookingRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupWeatherRouter(e)
	SetupHealthRouter(e)
}
