package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	// ListByProducer and ListByProvider return newest bookings first.
	ListByProducer(ctx context.Context, producerID int64) ([]*entity.Booking, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*entity.Booking, error)
}
