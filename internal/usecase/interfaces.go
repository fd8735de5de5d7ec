package usecase

import (
	"context"

	"agrolink/internal/domain/entity"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) bool
}

type TokenService interface {
	Issue(userID int64) (string, error)
	Revoke(ctx context.Context, token string) error
}

// NotificationPublisher delivers a stored notification to connected clients.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, notification *entity.Notification)
}
