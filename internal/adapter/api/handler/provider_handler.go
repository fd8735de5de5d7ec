package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"agrolink/internal/domain/entity"
	"agrolink/internal/infrastructure/metrics"
	"agrolink/internal/usecase"
	"agrolink/pkg/errors"
	"agrolink/pkg/response"
)

const defaultNearbyRadiusKm = 50.0

type ProviderHandler struct {
	providerUseCase *usecase.ProviderUseCase
	collector       *metrics.Collector
}

// NewProviderHandler builds the handler. collector may be nil.
func NewProviderHandler(providerUseCase *usecase.ProviderUseCase, collector *metrics.Collector) *ProviderHandler {
	return &ProviderHandler{
		providerUseCase: providerUseCase,
		collector:       collector,
	}
}

type updateProviderRequest struct {
	ServiceType     *string  `json:"serviceType" validate:"omitempty,oneof=drone tractor manual"`
	Specialty       *string  `json:"specialty" validate:"omitempty,min=1"`
	Description     *string  `json:"description"`
	PricePerHectare *float64 `json:"pricePerHectare" validate:"omitempty,gte=0"`
	PricePerDay     *float64 `json:"pricePerDay" validate:"omitempty,gte=0"`
	Location        *string  `json:"location" validate:"omitempty,min=1"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	CoverageRadius  *int     `json:"coverageRadius" validate:"omitempty,gte=1"`
	IsAvailable     *bool    `json:"isAvailable"`
	Certifications  []string `json:"certifications"`
	EquipmentOwned  *bool    `json:"equipmentOwned"`
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest(name+" must be a number", err)
	}
	return &value, nil
}

// queryBool accepts only "true" and "false"; an absent parameter means no filter.
func queryBool(c echo.Context, name string) (*bool, error) {
	switch c.QueryParam(name) {
	case "":
		return nil, nil
	case "true":
		value := true
		return &value, nil
	case "false":
		value := false
		return &value, nil
	default:
		return nil, errors.BadRequest(name+" must be true or false", nil)
	}
}

func (h *ProviderHandler) observe(kind string, results []*entity.ProviderWithUser) {
	if h.collector != nil {
		h.collector.ObserveSearch(kind, len(results))
	}
}

func (h *ProviderHandler) SearchProviders(c echo.Context) error {
	filter := usecase.ProviderFilter{
		ServiceType: c.QueryParam("serviceType"),
		Location:    c.QueryParam("location"),
	}

	var err error
	if filter.Latitude, err = queryFloat(c, "latitude"); err != nil {
		return response.Error(c, err)
	}
	if filter.Longitude, err = queryFloat(c, "longitude"); err != nil {
		return response.Error(c, err)
	}
	if filter.MaxDistance, err = queryFloat(c, "maxDistance"); err != nil {
		return response.Error(c, err)
	}
	if filter.IsAvailable, err = queryBool(c, "isAvailable"); err != nil {
		return response.Error(c, err)
	}

	providers, err := h.providerUseCase.SearchProviders(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	h.observe("search", providers)
	return response.Success(c, providers)
}

func (h *ProviderHandler) GetNearbyProviders(c echo.Context) error {
	latitude, err := queryFloat(c, "latitude")
	if err != nil {
		return response.Error(c, err)
	}
	longitude, err := queryFloat(c, "longitude")
	if err != nil {
		return response.Error(c, err)
	}
	if latitude == nil || longitude == nil {
		return response.Error(c, errors.BadRequest("latitude and longitude are required", nil))
	}

	radius, err := queryFloat(c, "radius")
	if err != nil {
		return response.Error(c, err)
	}
	radiusKm := defaultNearbyRadiusKm
	if radius != nil {
		radiusKm = *radius
	}

	providers, err := h.providerUseCase.GetProvidersNearby(c.Request().Context(), *latitude, *longitude, radiusKm)
	if err != nil {
		return response.Error(c, err)
	}

	h.observe("nearby", providers)
	return response.Success(c, providers)
}

func (h *ProviderHandler) GetProvider(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	provider, err := h.providerUseCase.GetProvider(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, provider)
}

func (h *ProviderHandler) UpdateProvider(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProviderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateProviderInput{
		Specialty:       req.Specialty,
		Description:     req.Description,
		PricePerHectare: req.PricePerHectare,
		PricePerDay:     req.PricePerDay,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		CoverageRadius:  req.CoverageRadius,
		IsAvailable:     req.IsAvailable,
		Certifications:  req.Certifications,
		EquipmentOwned:  req.EquipmentOwned,
	}
	if req.ServiceType != nil {
		serviceType := entity.ServiceType(*req.ServiceType)
		input.ServiceType = &serviceType
	}

	provider, err := h.providerUseCase.UpdateProvider(c.Request().Context(), uid, id, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, provider)
}
