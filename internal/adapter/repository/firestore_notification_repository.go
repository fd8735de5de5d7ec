package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	return createDoc(ctx, r.client, notificationsCollection, nil, func(id int64) interface{} {
		notification.ID = id
		return notification
	})
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var notification entity.Notification
	if err := getDoc(ctx, r.client, notificationsCollection, id, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection(notificationsCollection).Where("userId", "==", userID)
	notifications, err := queryAll[entity.Notification](ctx, query, "notification")
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})

	total := int64(len(notifications))
	return paginate(notifications, limit, offset), total, nil
}

func (r *firestoreNotificationRepository) MarkAsRead(ctx context.Context, id int64) (*entity.Notification, error) {
	_, err := r.client.Collection(notificationsCollection).Doc(docID(id)).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	if err != nil {
		return nil, mapFirestoreError(err, notificationsCollection, "update")
	}

	return r.GetByID(ctx, id)
}
