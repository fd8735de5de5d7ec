package usecase

import (
	"context"
	"strings"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	publisher        NotificationPublisher
}

// NewNotificationUseCase builds the use case. publisher may be nil, in which
// case notifications are only stored.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository, publisher NotificationPublisher) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

type CreateNotificationInput struct {
	UserID  int64
	Title   string
	Message string
	Type    entity.NotificationType
}

// Notify stores a notification and pushes it to the recipient's open connections.
func (uc *NotificationUseCase) Notify(ctx context.Context, input CreateNotificationInput) (*entity.Notification, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, errors.BadRequest("Notification title and message are required", nil)
	}
	if input.Type == "" {
		input.Type = entity.NotificationTypeSystem
	}

	notification := &entity.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
		IsRead:  false,
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		uc.publisher.PublishNotification(ctx, notification)
	}

	logger.Debug("Notification %d (%s) created for user %d", notification.ID, notification.Type, notification.UserID)
	return notification, nil
}

// ListNotifications returns one page of the caller's own notifications, newest first.
func (uc *NotificationUseCase) ListNotifications(ctx context.Context, requesterID, userID int64, limit, offset int) ([]*entity.Notification, int64, error) {
	if requesterID != userID {
		return nil, 0, errors.Forbidden("You can only view your own notifications", nil)
	}
	return uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, requesterID, notificationID int64) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != requesterID {
		return nil, errors.Forbidden("You can only update your own notifications", nil)
	}

	return uc.notificationRepo.MarkAsRead(ctx, notificationID)
}
