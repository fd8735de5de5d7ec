package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
)

type firestoreBookingRepository struct {
	client *firestore.Client
}

func NewFirestoreBookingRepository(client *firestore.Client) repository.BookingRepository {
	return &firestoreBookingRepository{
		client: client,
	}
}

func (r *firestoreBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	return createDoc(ctx, r.client, bookingsCollection, nil, func(id int64) interface{} {
		booking.ID = id
		return booking
	})
}

func (r *firestoreBookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	var booking entity.Booking
	if err := getDoc(ctx, r.client, bookingsCollection, id, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *firestoreBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return replaceDoc(ctx, r.client, bookingsCollection, booking.ID, booking)
}

func (r *firestoreBookingRepository) ListByProducer(ctx context.Context, producerID int64) ([]*entity.Booking, error) {
	return r.listWhere(ctx, "producerId", producerID)
}

func (r *firestoreBookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]*entity.Booking, error) {
	return r.listWhere(ctx, "providerId", providerID)
}

func (r *firestoreBookingRepository) listWhere(ctx context.Context, field string, id int64) ([]*entity.Booking, error) {
	query := r.client.Collection(bookingsCollection).Where(field, "==", id)
	bookings, err := queryAll[entity.Booking](ctx, query, "booking")
	if err != nil {
		return nil, err
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})
	return bookings, nil
}
