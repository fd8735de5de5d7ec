package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is a known status. Transitions between statuses are not restricted.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            int64         `json:"id" firestore:"id"`
	ProducerID    int64         `json:"producerId" firestore:"producerId"`
	ProviderID    int64         `json:"providerId" firestore:"providerId"`
	ServiceType   ServiceType   `json:"serviceType" firestore:"serviceType"`
	ScheduledDate time.Time     `json:"scheduledDate" firestore:"scheduledDate"`
	Area          *float64      `json:"area" firestore:"area"` // hectares
	TotalPrice    *float64      `json:"totalPrice" firestore:"totalPrice"`
	Status        BookingStatus `json:"status" firestore:"status"`
	Notes         string        `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt"`
}

// BookingWithDetails is a booking joined with both parties and their users.
type BookingWithDetails struct {
	*Booking
	Provider *ProviderWithUser `json:"provider"`
	Producer *ProducerWithUser `json:"producer"`
}
