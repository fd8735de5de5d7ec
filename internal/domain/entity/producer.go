package entity

// Producer is the farm-operator profile of a user.
type Producer struct {
	ID        int64    `json:"id" firestore:"id"`
	UserID    int64    `json:"userId" firestore:"userId"`
	FarmName  string   `json:"farmName,omitempty" firestore:"farmName,omitempty"`
	Location  string   `json:"location" firestore:"location"`
	Latitude  *float64 `json:"latitude" firestore:"latitude"`
	Longitude *float64 `json:"longitude" firestore:"longitude"`
	FarmSize  *float64 `json:"farmSize" firestore:"farmSize"` // hectares
	CropTypes []string `json:"cropTypes" firestore:"cropTypes"`
}

type ProducerWithUser struct {
	*Producer
	User *User `json:"user"`
}
