package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/middleware"
	"agrolink/internal/infrastructure/metrics"
	"agrolink/internal/usecase"
	"agrolink/pkg/errors"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	providerHandler     *ProviderHandler
	producerHandler     *ProducerHandler
	bookingHandler      *BookingHandler
	reviewHandler       *ReviewHandler
	notificationHandler *NotificationHandler
	weatherHandler      *WeatherHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	providerUseCase *usecase.ProviderUseCase,
	producerUseCase *usecase.ProducerUseCase,
	bookingUseCase *usecase.BookingUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	collector *metrics.Collector,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	providerHandler = NewProviderHandler(providerUseCase, collector)
	producerHandler = NewProducerHandler(producerUseCase)
	bookingHandler = NewBookingHandler(bookingUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	weatherHandler = NewWeatherHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProviderHandler() *ProviderHandler {
	return providerHandler
}

func GetProducerHandler() *ProducerHandler {
	return producerHandler
}

func GetBookingHandler() *BookingHandler {
	return bookingHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetWeatherHandler() *WeatherHandler {
	return weatherHandler
}

// currentUserID reads the id set by the auth middleware.
func currentUserID(c echo.Context) (int64, error) {
	uid, ok := c.Get(middleware.ContextUserID).(int64)
	if !ok || uid == 0 {
		return 0, errors.Unauthorized("Authentication required", nil)
	}
	return uid, nil
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid "+name, err)
	}
	return id, nil
}

// bindAndValidate binds the body into req and runs the echo validator on it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	return c.Validate(req)
}
