package handler

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/usecase"
	"agrolink/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	BookingID  int64  `json:"bookingId" validate:"required,gt=0"`
	RevieweeID int64  `json:"revieweeId" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=1000"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), uid, usecase.CreateReviewInput{
		BookingID:  req.BookingID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListByProvider(c echo.Context) error {
	providerID, err := parseIDParam(c, "providerId")
	if err != nil {
		return response.Error(c, err)
	}

	reviews, err := h.reviewUseCase.ListByProvider(c.Request().Context(), providerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
