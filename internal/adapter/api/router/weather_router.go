package router

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/handler"
)

func SetupWeatherRouter(e *echo.Echo) {
	e.GET("/api/weather", handler.GetWeatherHandler().GetWeather)
}
