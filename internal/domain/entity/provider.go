package entity

type ServiceType string

const (
	ServiceTypeDrone   ServiceType = "drone"
	ServiceTypeTractor ServiceType = "tractor"
	ServiceTypeManual  ServiceType = "manual"
)

// DefaultCoverageRadius is the travel radius in km assumed when a provider does not set one.
const DefaultCoverageRadius = 50

// Provider is the service-operator profile of a user.
// Rating and TotalReviews are derived from the reviews that name this provider as reviewee.
type Provider struct {
	ID              int64       `json:"id" firestore:"id"`
	UserID          int64       `json:"userId" firestore:"userId"`
	ServiceType     ServiceType `json:"serviceType" firestore:"serviceType"`
	Specialty       string      `json:"specialty" firestore:"specialty"`
	Description     string      `json:"description,omitempty" firestore:"description,omitempty"`
	PricePerHectare *float64    `json:"pricePerHectare" firestore:"pricePerHectare"`
	PricePerDay     *float64    `json:"pricePerDay" firestore:"pricePerDay"`
	Location        string      `json:"location" firestore:"location"`
	Latitude        *float64    `json:"latitude" firestore:"latitude"`
	Longitude       *float64    `json:"longitude" firestore:"longitude"`
	CoverageRadius  int         `json:"coverageRadius" firestore:"coverageRadius"`
	IsAvailable     bool        `json:"isAvailable" firestore:"isAvailable"`
	Certifications  []string    `json:"certifications" firestore:"certifications"`
	EquipmentOwned  bool        `json:"equipmentOwned" firestore:"equipmentOwned"`
	Rating          float64     `json:"rating" firestore:"rating"`
	TotalReviews    int         `json:"totalReviews" firestore:"totalReviews"`
}

func (p *Provider) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ProviderWithUser is a provider joined with its owning user.
type ProviderWithUser struct {
	*Provider
	User *User `json:"user"`
}
