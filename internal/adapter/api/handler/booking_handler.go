package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"agrolink/internal/domain/entity"
	"agrolink/internal/usecase"
	"agrolink/pkg/response"
)

type BookingHandler struct {
	bookingUseCase *usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

type createBookingRequest struct {
	ProducerID    int64     `json:"producerId" validate:"required,gt=0"`
	ProviderID    int64     `json:"providerId" validate:"required,gt=0"`
	ServiceType   string    `json:"serviceType" validate:"omitempty,oneof=drone tractor manual"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Area          *float64  `json:"area" validate:"omitempty,gt=0"`
	TotalPrice    *float64  `json:"totalPrice" validate:"omitempty,gte=0"`
	Notes         string    `json:"notes" validate:"max=2000"`
}

type updateBookingRequest struct {
	ServiceType   *string    `json:"serviceType" validate:"omitempty,oneof=drone tractor manual"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Area          *float64   `json:"area" validate:"omitempty,gt=0"`
	TotalPrice    *float64   `json:"totalPrice" validate:"omitempty,gte=0"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	Notes         *string    `json:"notes" validate:"omitempty,max=2000"`
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	booking, err := h.bookingUseCase.CreateBooking(c.Request().Context(), uid, usecase.CreateBookingInput{
		ProducerID:    req.ProducerID,
		ProviderID:    req.ProviderID,
		ServiceType:   entity.ServiceType(req.ServiceType),
		ScheduledDate: req.ScheduledDate,
		Area:          req.Area,
		TotalPrice:    req.TotalPrice,
		Notes:         req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, booking)
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateBookingInput{
		ScheduledDate: req.ScheduledDate,
		Area:          req.Area,
		TotalPrice:    req.TotalPrice,
		Notes:         req.Notes,
	}
	if req.ServiceType != nil {
		serviceType := entity.ServiceType(*req.ServiceType)
		input.ServiceType = &serviceType
	}
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		input.Status = &status
	}

	booking, err := h.bookingUseCase.UpdateBooking(c.Request().Context(), uid, id, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, booking)
}

func (h *BookingHandler) ListByProducer(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	producerID, err := parseIDParam(c, "producerId")
	if err != nil {
		return response.Error(c, err)
	}

	bookings, err := h.bookingUseCase.ListByProducer(c.Request().Context(), uid, producerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bookings)
}

func (h *BookingHandler) ListByProvider(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	providerID, err := parseIDParam(c, "providerId")
	if err != nil {
		return response.Error(c, err)
	}

	bookings, err := h.bookingUseCase.ListByProvider(c.Request().Context(), uid, providerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bookings)
}
