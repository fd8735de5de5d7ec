package repository

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"agrolink/internal/domain/entity"
)

// Bool columns carry no gorm default: gorm skips zero values when a default
// is declared, which would turn an explicit false into true.

type userModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string `gorm:"type:text;not null"`
	Name      string `gorm:"type:text;not null"`
	Phone     string `gorm:"type:varchar(64)"`
	UserType  string `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
}

func (userModel) TableName() string {
	return "users"
}

type providerModel struct {
	ID              int64                       `gorm:"primaryKey;autoIncrement"`
	UserID          int64                       `gorm:"not null;index"`
	ServiceType     string                      `gorm:"type:varchar(32);not null;index"`
	Specialty       string                      `gorm:"type:text;not null"`
	Description     string                      `gorm:"type:text"`
	PricePerHectare *float64                    `gorm:"type:decimal(10,2)"`
	PricePerDay     *float64                    `gorm:"type:decimal(10,2)"`
	Location        string                      `gorm:"type:text;not null"`
	Latitude        *float64                    `gorm:"type:decimal(10,8)"`
	Longitude       *float64                    `gorm:"type:decimal(11,8)"`
	CoverageRadius  int                         `gorm:"not null"`
	IsAvailable     bool                        `gorm:"not null;index"`
	Certifications  datatypes.JSONSlice[string] `gorm:"type:json"`
	EquipmentOwned  bool                        `gorm:"not null"`
	Rating          float64                     `gorm:"type:decimal(3,2);not null"`
	TotalReviews    int                         `gorm:"not null"`
}

func (providerModel) TableName() string {
	return "providers"
}

type producerModel struct {
	ID        int64                       `gorm:"primaryKey;autoIncrement"`
	UserID    int64                       `gorm:"not null;index"`
	FarmName  string                      `gorm:"type:text"`
	Location  string                      `gorm:"type:text;not null"`
	Latitude  *float64                    `gorm:"type:decimal(10,8)"`
	Longitude *float64                    `gorm:"type:decimal(11,8)"`
	FarmSize  *float64                    `gorm:"type:decimal(10,2)"`
	CropTypes datatypes.JSONSlice[string] `gorm:"type:json"`
}

func (producerModel) TableName() string {
	return "producers"
}

type bookingModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	ProducerID    int64     `gorm:"not null;index"`
	ProviderID    int64     `gorm:"not null;index"`
	ServiceType   string    `gorm:"type:varchar(32);not null"`
	ScheduledDate time.Time `gorm:"not null"`
	Area          *float64  `gorm:"type:decimal(10,2)"`
	TotalPrice    *float64  `gorm:"type:decimal(10,2)"`
	Status        string    `gorm:"type:varchar(32);not null;index"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time
}

func (bookingModel) TableName() string {
	return "bookings"
}

type reviewModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	BookingID  int64  `gorm:"not null;index"`
	ReviewerID int64  `gorm:"not null;index"`
	RevieweeID int64  `gorm:"not null;index"`
	Rating     int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (reviewModel) TableName() string {
	return "reviews"
}

type notificationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	Title     string `gorm:"type:text;not null"`
	Message   string `gorm:"type:text;not null"`
	Type      string `gorm:"type:varchar(16);not null"`
	IsRead    bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (notificationModel) TableName() string {
	return "notifications"
}

// AutoMigrate creates or updates every table of the relational backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&providerModel{},
		&producerModel{},
		&bookingModel{},
		&reviewModel{},
		&notificationModel{},
	)
}

func newUserModel(u *entity.User) *userModel {
	return &userModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Phone:     u.Phone,
		UserType:  string(u.UserType),
		CreatedAt: u.CreatedAt,
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		Phone:     m.Phone,
		UserType:  entity.UserType(m.UserType),
		CreatedAt: m.CreatedAt,
	}
}

func newProviderModel(p *entity.Provider) *providerModel {
	return &providerModel{
		ID:              p.ID,
		UserID:          p.UserID,
		ServiceType:     string(p.ServiceType),
		Specialty:       p.Specialty,
		Description:     p.Description,
		PricePerHectare: p.PricePerHectare,
		PricePerDay:     p.PricePerDay,
		Location:        p.Location,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		CoverageRadius:  p.CoverageRadius,
		IsAvailable:     p.IsAvailable,
		Certifications:  datatypes.JSONSlice[string](p.Certifications),
		EquipmentOwned:  p.EquipmentOwned,
		Rating:          p.Rating,
		TotalReviews:    p.TotalReviews,
	}
}

func (m *providerModel) toEntity() *entity.Provider {
	return &entity.Provider{
		ID:              m.ID,
		UserID:          m.UserID,
		ServiceType:     entity.ServiceType(m.ServiceType),
		Specialty:       m.Specialty,
		Description:     m.Description,
		PricePerHectare: m.PricePerHectare,
		PricePerDay:     m.PricePerDay,
		Location:        m.Location,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		CoverageRadius:  m.CoverageRadius,
		IsAvailable:     m.IsAvailable,
		Certifications:  []string(m.Certifications),
		EquipmentOwned:  m.EquipmentOwned,
		Rating:          m.Rating,
		TotalReviews:    m.TotalReviews,
	}
}

func newProducerModel(p *entity.Producer) *producerModel {
	return &producerModel{
		ID:        p.ID,
		UserID:    p.UserID,
		FarmName:  p.FarmName,
		Location:  p.Location,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		FarmSize:  p.FarmSize,
		CropTypes: datatypes.JSONSlice[string](p.CropTypes),
	}
}

func (m *producerModel) toEntity() *entity.Producer {
	return &entity.Producer{
		ID:        m.ID,
		UserID:    m.UserID,
		FarmName:  m.FarmName,
		Location:  m.Location,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		FarmSize:  m.FarmSize,
		CropTypes: []string(m.CropTypes),
	}
}

func newBookingModel(b *entity.Booking) *bookingModel {
	return &bookingModel{
		ID:            b.ID,
		ProducerID:    b.ProducerID,
		ProviderID:    b.ProviderID,
		ServiceType:   string(b.ServiceType),
		ScheduledDate: b.ScheduledDate,
		Area:          b.Area,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
	}
}

func (m *bookingModel) toEntity() *entity.Booking {
	return &entity.Booking{
		ID:            m.ID,
		ProducerID:    m.ProducerID,
		ProviderID:    m.ProviderID,
		ServiceType:   entity.ServiceType(m.ServiceType),
		ScheduledDate: m.ScheduledDate,
		Area:          m.Area,
		TotalPrice:    m.TotalPrice,
		Status:        entity.BookingStatus(m.Status),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

func newReviewModel(r *entity.Review) *reviewModel {
	return &reviewModel{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *reviewModel) toEntity() *entity.Review {
	return &entity.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		ReviewerID: m.ReviewerID,
		RevieweeID: m.RevieweeID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

func newNotificationModel(n *entity.Notification) *notificationModel {
	return &notificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (m *notificationModel) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		Type:      entity.NotificationType(m.Type),
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
