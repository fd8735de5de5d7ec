package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupProviderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	providerHandler := handler.GetProviderHandler()

	providers := e.Group("/api/providers")

	// Static segments are matched before /:id.
	providers.GET("/search", providerHandler.SearchProviders)
	providers.GET("/nearby", providerHandler.GetNearbyProviders)
	providers.GET("/:id", providerHandler.GetProvider)

	providers.PATCH("/:id", providerHandler.UpdateProvider, authMiddleware.Authenticate)
}
