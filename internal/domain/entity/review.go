package entity

import (
	"time"
)

// Review is left by a producer after a booking. RevieweeID is the provider id.
type Review struct {
	ID         int64     `json:"id" firestore:"id"`
	BookingID  int64     `json:"bookingId" firestore:"bookingId"`
	ReviewerID int64     `json:"reviewerId" firestore:"reviewerId"`
	RevieweeID int64     `json:"revieweeId" firestore:"revieweeId"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Comment    string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}
