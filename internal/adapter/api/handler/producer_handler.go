package handler

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/usecase"
	"agrolink/pkg/response"
)

type ProducerHandler struct {
	producerUseCase *usecase.ProducerUseCase
}

func NewProducerHandler(producerUseCase *usecase.ProducerUseCase) *ProducerHandler {
	return &ProducerHandler{
		producerUseCase: producerUseCase,
	}
}

type updateProducerRequest struct {
	FarmName  *string  `json:"farmName"`
	Location  *string  `json:"location" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	FarmSize  *float64 `json:"farmSize" validate:"omitempty,gte=0"`
	CropTypes []string `json:"cropTypes"`
}

func (h *ProducerHandler) GetProducer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	producer, err := h.producerUseCase.GetProducer(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, producer)
}

func (h *ProducerHandler) UpdateProducer(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProducerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	producer, err := h.producerUseCase.UpdateProducer(c.Request().Context(), uid, id, usecase.UpdateProducerInput{
		FarmName:  req.FarmName,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		FarmSize:  req.FarmSize,
		CropTypes: req.CropTypes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, producer)
}
