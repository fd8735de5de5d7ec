package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	// ListByUser returns one page of a user's notifications, newest first, and the total count.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, int64, error)
	MarkAsRead(ctx context.Context, id int64) (*entity.Notification, error)
}
