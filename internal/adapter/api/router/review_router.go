package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/api/reviews")

	// Public routes
	reviews.GET("/provider/:providerId", reviewHandler.ListByProvider)

	// Protected routes
	reviews.POST("", reviewHandler.CreateReview, authMiddleware.Authenticate)
}
