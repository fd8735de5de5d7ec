package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupProducerRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	producerHandler := handler.GetProducerHandler()

	producers := e.Group("/api/producers")
	producers.GET("/:id", producerHandler.GetProducer)
	producers.PATCH("/:id", producerHandler.UpdateProducer, authMiddleware.Authenticate)
}
