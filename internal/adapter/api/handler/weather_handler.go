package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"agrolink/pkg/response"
)

// WeatherHandler serves fixed spraying conditions until a real forecast provider is wired in.
type WeatherHandler struct {
	now func() time.Time
}

func NewWeatherHandler() *WeatherHandler {
	return &WeatherHandler{
		now: time.Now,
	}
}

type forecastDay struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`
	Suitable  bool   `json:"suitable"`
}

type weatherResponse struct {
	Condition           string        `json:"condition"`
	Temperature         float64       `json:"temperature"` // °C
	Humidity            float64       `json:"humidity"`    // %
	WindSpeed           float64       `json:"windSpeed"`   // km/h
	SuitableForSpraying bool          `json:"suitableForSpraying"`
	Forecast            []forecastDay `json:"forecast"`
}

func (h *WeatherHandler) GetWeather(c echo.Context) error {
	today := h.now().UTC()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}

	return response.Success(c, weatherResponse{
		Condition:           "Ideal",
		Temperature:         24,
		Humidity:            65,
		WindSpeed:           8,
		SuitableForSpraying: true,
		Forecast: []forecastDay{
			{Date: day(1), Condition: "Sunny", Suitable: true},
			{Date: day(2), Condition: "Partly Cloudy", Suitable: true},
			{Date: day(3), Condition: "Rain", Suitable: false},
		},
	})
}
