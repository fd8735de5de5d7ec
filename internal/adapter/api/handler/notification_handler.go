package handler

import (
	"github.com/labstack/echo/v4"

	"agrolink/internal/usecase"
	"agrolink/pkg/response"
	"agrolink/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUseCase.ListNotifications(
		c.Request().Context(),
		uid,
		userID,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	notification, err := h.notificationUseCase.MarkAsRead(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}
