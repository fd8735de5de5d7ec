package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	// Public routes
	public := e.Group("/api/auth")
	if rateLimiter != nil {
		public.Use(rateLimiter.Middleware())
	}
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	// Protected routes
	protected := e.Group("/api/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/logout", authHandler.Logout)
}
