package handler

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/adapter/api/middleware"
	"agrolink/internal/domain/entity"
	"agrolink/internal/usecase"
	"agrolink/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	UserType string `json:"userType" validate:"required,oneof=producer provider"`

	Location  string   `json:"location" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	FarmName  string   `json:"farmName"`
	FarmSize  *float64 `json:"farmSize" validate:"omitempty,gte=0"`
	CropTypes []string `json:"cropTypes"`

	ServiceType     string   `json:"serviceType" validate:"omitempty,oneof=drone tractor manual"`
	Specialty       string   `json:"specialty"`
	Description     string   `json:"description"`
	PricePerHectare *float64 `json:"pricePerHectare" validate:"omitempty,gte=0"`
	PricePerDay     *float64 `json:"pricePerDay" validate:"omitempty,gte=0"`
	CoverageRadius  *int     `json:"coverageRadius" validate:"omitempty,gte=1"`
	Certifications  []string `json:"certifications"`
	EquipmentOwned  *bool    `json:"equipmentOwned"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Phone:           req.Phone,
		UserType:        entity.UserType(req.UserType),
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		FarmName:        req.FarmName,
		FarmSize:        req.FarmSize,
		CropTypes:       req.CropTypes,
		ServiceType:     entity.ServiceType(req.ServiceType),
		Specialty:       req.Specialty,
		Description:     req.Description,
		PricePerHectare: req.PricePerHectare,
		PricePerDay:     req.PricePerDay,
		CoverageRadius:  req.CoverageRadius,
		Certifications:  req.Certifications,
		EquipmentOwned:  req.EquipmentOwned,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := c.Get(middleware.ContextToken).(string)
	if !ok {
		var err error
		if token, err = middleware.BearerToken(c); err != nil {
			return response.Error(c, err)
		}
	}

	if err := h.authUseCase.Logout(c.Request().Context(), token); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}
