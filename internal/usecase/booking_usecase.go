package usecase

import (
	"context"
	"fmt"
	"time"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/logger"
)

type BookingUseCase struct {
	bookingRepo   repository.BookingRepository
	producerRepo  repository.ProducerRepository
	providerRepo  repository.ProviderRepository
	userRepo      repository.UserRepository
	notifications *NotificationUseCase
}

func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	producerRepo repository.ProducerRepository,
	providerRepo repository.ProviderRepository,
	userRepo repository.UserRepository,
	notifications *NotificationUseCase,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo:   bookingRepo,
		producerRepo:  producerRepo,
		providerRepo:  providerRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

type CreateBookingInput struct {
	ProducerID    int64
	ProviderID    int64
	ServiceType   entity.ServiceType
	ScheduledDate time.Time
	Area          *float64
	TotalPrice    *float64
	Notes         string
}

// CreateBooking books a provider on behalf of the caller's producer profile
// and notifies the provider's user.
func (uc *BookingUseCase) CreateBooking(ctx context.Context, userID int64, input CreateBookingInput) (*entity.Booking, error) {
	producer, err := uc.producerRepo.GetByID(ctx, input.ProducerID)
	if err != nil {
		return nil, err
	}
	if producer.UserID != userID {
		return nil, errors.Forbidden("You can only book services for your own producer profile", nil)
	}

	provider, err := uc.providerRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}

	if input.ScheduledDate.IsZero() {
		return nil, errors.BadRequest("Scheduled date is required", nil)
	}

	serviceType := input.ServiceType
	if serviceType == "" {
		serviceType = provider.ServiceType
	}

	booking := &entity.Booking{
		ProducerID:    producer.ID,
		ProviderID:    provider.ID,
		ServiceType:   serviceType,
		ScheduledDate: input.ScheduledDate.UTC(),
		Area:          input.Area,
		TotalPrice:    input.TotalPrice,
		Status:        entity.BookingStatusPending,
		Notes:         input.Notes,
	}

	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	uc.notify(ctx, CreateNotificationInput{
		UserID:  provider.UserID,
		Title:   "Nova Solicitação de Serviço",
		Message: "Você recebeu uma nova solicitação de agendamento",
		Type:    entity.NotificationTypeBooking,
	})

	return booking, nil
}

// UpdateBookingInput is a partial update; nil fields are left unchanged.
type UpdateBookingInput struct {
	ServiceType   *entity.ServiceType
	ScheduledDate *time.Time
	Area          *float64
	TotalPrice    *float64
	Status        *entity.BookingStatus
	Notes         *string
}

// UpdateBooking lets either party change a booking. Any status may follow any
// other; a status change notifies the producer's user.
func (uc *BookingUseCase) UpdateBooking(ctx context.Context, userID, bookingID int64, input UpdateBookingInput) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	producer, err := uc.producerRepo.GetByID(ctx, booking.ProducerID)
	if err != nil {
		return nil, err
	}
	provider, err := uc.providerRepo.GetByID(ctx, booking.ProviderID)
	if err != nil {
		return nil, err
	}
	if producer.UserID != userID && provider.UserID != userID {
		return nil, errors.Forbidden("You are not a party to this booking", nil)
	}

	previousStatus := booking.Status

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errors.BadRequest(fmt.Sprintf("Invalid booking status %q", *input.Status), nil)
		}
		booking.Status = *input.Status
	}
	if input.ServiceType != nil {
		booking.ServiceType = *input.ServiceType
	}
	if input.ScheduledDate != nil {
		booking.ScheduledDate = input.ScheduledDate.UTC()
	}
	if input.Area != nil {
		booking.Area = input.Area
	}
	if input.TotalPrice != nil {
		booking.TotalPrice = input.TotalPrice
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if booking.Status != previousStatus {
		uc.notify(ctx, CreateNotificationInput{
			UserID:  producer.UserID,
			Title:   "Atualização de Agendamento",
			Message: fmt.Sprintf("Seu agendamento #%d agora está %s", booking.ID, booking.Status),
			Type:    entity.NotificationTypeBooking,
		})
	}

	return booking, nil
}

// ListByProducer returns the producer's bookings with both parties, newest first.
func (uc *BookingUseCase) ListByProducer(ctx context.Context, userID, producerID int64) ([]*entity.BookingWithDetails, error) {
	producer, err := uc.producerRepo.GetByID(ctx, producerID)
	if err != nil {
		return nil, err
	}
	if producer.UserID != userID {
		return nil, errors.Forbidden("You can only view your own bookings", nil)
	}

	bookings, err := uc.bookingRepo.ListByProducer(ctx, producerID)
	if err != nil {
		return nil, err
	}
	return uc.withDetails(ctx, bookings)
}

// ListByProvider returns the provider's bookings with both parties, newest first.
func (uc *BookingUseCase) ListByProvider(ctx context.Context, userID, providerID int64) ([]*entity.BookingWithDetails, error) {
	provider, err := uc.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider.UserID != userID {
		return nil, errors.Forbidden("You can only view your own bookings", nil)
	}

	bookings, err := uc.bookingRepo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return uc.withDetails(ctx, bookings)
}

// withDetails joins each booking with its provider, producer and their users.
// Lookups are memoized per call. A dangling reference fails the whole list.
func (uc *BookingUseCase) withDetails(ctx context.Context, bookings []*entity.Booking) ([]*entity.BookingWithDetails, error) {
	providers := make(map[int64]*entity.ProviderWithUser)
	producers := make(map[int64]*entity.ProducerWithUser)
	users := make(map[int64]*entity.User)

	getUser := func(id int64) (*entity.User, error) {
		if user, ok := users[id]; ok {
			return user, nil
		}
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users[id] = user
		return user, nil
	}

	results := make([]*entity.BookingWithDetails, 0, len(bookings))
	for _, booking := range bookings {
		provider, ok := providers[booking.ProviderID]
		if !ok {
			p, err := uc.providerRepo.GetByID(ctx, booking.ProviderID)
			if err != nil {
				return nil, err
			}
			user, err := getUser(p.UserID)
			if err != nil {
				return nil, err
			}
			provider = &entity.ProviderWithUser{Provider: p, User: user}
			providers[booking.ProviderID] = provider
		}

		producer, ok := producers[booking.ProducerID]
		if !ok {
			p, err := uc.producerRepo.GetByID(ctx, booking.ProducerID)
			if err != nil {
				return nil, err
			}
			user, err := getUser(p.UserID)
			if err != nil {
				return nil, err
			}
			producer = &entity.ProducerWithUser{Producer: p, User: user}
			producers[booking.ProducerID] = producer
		}

		results = append(results, &entity.BookingWithDetails{
			Booking:  booking,
			Provider: provider,
			Producer: producer,
		})
	}

	return results, nil
}

// notify is best effort: the booking is already stored, so a failed
// notification is logged rather than returned.
func (uc *BookingUseCase) notify(ctx context.Context, input CreateNotificationInput) {
	if _, err := uc.notifications.Notify(ctx, input); err != nil {
		logger.Error("Failed to notify user %d: %v", input.UserID, err)
	}
}
