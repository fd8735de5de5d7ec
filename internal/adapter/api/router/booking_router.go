package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
)

func SetupBookingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	bookingHandler := handler.GetBookingHandler()

	bookings := e.Group("/api/bookings")
	bookings.Use(authMiddleware.Authenticate)

	bookings.POST("", bookingHandler.CreateBooking)
	bookings.GET("/producer/:producerId", bookingHandler.ListByProducer)
	bookings.GET("/provider/:providerId", bookingHandler.ListByProvider)
	bookings.PATCH("/:id", bookingHandler.UpdateBooking)
}
