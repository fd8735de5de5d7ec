package entity

import (
	"time"
)

type UserType string

const (
	UserTypeProducer UserType = "producer"
	UserTypeProvider UserType = "provider"
)

// User is the root identity. Producer and Provider profiles hang off it by UserID.
type User struct {
	ID        int64     `json:"id" firestore:"id"`
	Username  string    `json:"username" firestore:"username"`
	Email     string    `json:"email" firestore:"email"`
	Password  string    `json:"-" firestore:"password"`
	Name      string    `json:"name" firestore:"name"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	UserType  UserType  `json:"userType" firestore:"userType"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
