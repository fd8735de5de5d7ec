package entity

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypeWeather NotificationType = "weather"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeSystem  NotificationType = "system"
)

type Notification struct {
	ID        int64            `json:"id" firestore:"id"`
	UserID    int64            `json:"userId" firestore:"userId"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Type      NotificationType `json:"type" firestore:"type"`
	IsRead    bool             `json:"isRead" firestore:"isRead"`
	CreatedAt time.Time        `json:"createdAt" firestore:"createdAt"`
}
