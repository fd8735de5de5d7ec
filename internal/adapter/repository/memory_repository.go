package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/utils"
)

// memoryDB is the keyed in-process backend. Records are copied on the way in
// and out so callers never share state with the maps.
type memoryDB struct {
	mu sync.RWMutex

	users         map[int64]*entity.User
	providers     map[int64]*entity.Provider
	producers     map[int64]*entity.Producer
	bookings      map[int64]*entity.Booking
	reviews       map[int64]*entity.Review
	notifications map[int64]*entity.Notification

	lastUserID         int64
	lastProviderID     int64
	lastProducerID     int64
	lastBookingID      int64
	lastReviewID       int64
	lastNotificationID int64
}

func NewMemoryStore() *repository.Store {
	db := &memoryDB{
		users:         make(map[int64]*entity.User),
		providers:     make(map[int64]*entity.Provider),
		producers:     make(map[int64]*entity.Producer),
		bookings:      make(map[int64]*entity.Booking),
		reviews:       make(map[int64]*entity.Review),
		notifications: make(map[int64]*entity.Notification),
	}

	return &repository.Store{
		Users:         &memoryUserRepository{db: db},
		Providers:     &memoryProviderRepository{db: db},
		Producers:     &memoryProducerRepository{db: db},
		Bookings:      &memoryBookingRepository{db: db},
		Reviews:       &memoryReviewRepository{db: db},
		Notifications: &memoryNotificationRepository{db: db},
	}
}

// Users

type memoryUserRepository struct {
	db *memoryDB
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkUnique(user, 0); err != nil {
		return err
	}

	r.db.lastUserID++
	user.ID = r.db.lastUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	r.db.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) checkUnique(user *entity.User, selfID int64) error {
	for _, existing := range r.db.users {
		if existing.ID == selfID {
			continue
		}
		if existing.Email == user.Email {
			return errors.Conflict("User with this email already exists", nil)
		}
		if existing.Username == user.Username {
			return errors.Conflict("User with this username already exists", nil)
		}
	}
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) findOne(match func(*entity.User) bool) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if match(user) {
			out := *user
			return &out, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	if err := r.checkUnique(user, user.ID); err != nil {
		return err
	}

	stored := *user
	r.db.users[user.ID] = &stored
	return nil
}

// Providers

type memoryProviderRepository struct {
	db *memoryDB
}

// cloneFloat gives the copy its own pointee so writes through either side stay local.
func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return utils.Ptr(*v)
}

func copyProvider(p *entity.Provider) *entity.Provider {
	out := *p
	out.PricePerHectare = cloneFloat(p.PricePerHectare)
	out.PricePerDay = cloneFloat(p.PricePerDay)
	out.Latitude = cloneFloat(p.Latitude)
	out.Longitude = cloneFloat(p.Longitude)
	out.Certifications = append([]string(nil), p.Certifications...)
	return &out
}

func (r *memoryProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastProviderID++
	provider.ID = r.db.lastProviderID
	r.db.providers[provider.ID] = copyProvider(provider)
	return nil
}

func (r *memoryProviderRepository) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	provider, ok := r.db.providers[id]
	if !ok {
		return nil, errors.NotFound("Provider", nil)
	}
	return copyProvider(provider), nil
}

func (r *memoryProviderRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Provider, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, provider := range r.db.providers {
		if provider.UserID == userID {
			return copyProvider(provider), nil
		}
	}
	return nil, errors.NotFound("Provider", nil)
}

func (r *memoryProviderRepository) List(ctx context.Context, query repository.ProviderQuery) ([]*entity.Provider, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	providers := make([]*entity.Provider, 0, len(r.db.providers))
	for _, provider := range r.db.providers {
		if query.ServiceType != "" && provider.ServiceType != query.ServiceType {
			continue
		}
		if query.IsAvailable != nil && provider.IsAvailable != *query.IsAvailable {
			continue
		}
		providers = append(providers, copyProvider(provider))
	}

	sort.Slice(providers, func(i, j int) bool { return providers[i].ID < providers[j].ID })
	return providers, nil
}

func (r *memoryProviderRepository) Update(ctx context.Context, provider *entity.Provider) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.providers[provider.ID]; !ok {
		return errors.NotFound("Provider", nil)
	}
	r.db.providers[provider.ID] = copyProvider(provider)
	return nil
}

// Producers

type memoryProducerRepository struct {
	db *memoryDB
}

func copyProducer(p *entity.Producer) *entity.Producer {
	out := *p
	out.Latitude = cloneFloat(p.Latitude)
	out.Longitude = cloneFloat(p.Longitude)
	out.FarmSize = cloneFloat(p.FarmSize)
	out.CropTypes = append([]string(nil), p.CropTypes...)
	return &out
}

func (r *memoryProducerRepository) Create(ctx context.Context, producer *entity.Producer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastProducerID++
	producer.ID = r.db.lastProducerID
	r.db.producers[producer.ID] = copyProducer(producer)
	return nil
}

func (r *memoryProducerRepository) GetByID(ctx context.Context, id int64) (*entity.Producer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	producer, ok := r.db.producers[id]
	if !ok {
		return nil, errors.NotFound("Producer", nil)
	}
	return copyProducer(producer), nil
}

func (r *memoryProducerRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Producer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, producer := range r.db.producers {
		if producer.UserID == userID {
			return copyProducer(producer), nil
		}
	}
	return nil, errors.NotFound("Producer", nil)
}

func (r *memoryProducerRepository) Update(ctx context.Context, producer *entity.Producer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.producers[producer.ID]; !ok {
		return errors.NotFound("Producer", nil)
	}
	r.db.producers[producer.ID] = copyProducer(producer)
	return nil
}

// Bookings

type memoryBookingRepository struct {
	db *memoryDB
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastBookingID++
	booking.ID = r.db.lastBookingID
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	r.db.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func copyBooking(b *entity.Booking) *entity.Booking {
	out := *b
	out.Area = cloneFloat(b.Area)
	out.TotalPrice = cloneFloat(b.TotalPrice)
	return &out
}

func (r *memoryBookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	booking, ok := r.db.bookings[id]
	if !ok {
		return nil, errors.NotFound("Booking", nil)
	}
	return copyBooking(booking), nil
}

func (r *memoryBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.bookings[booking.ID]; !ok {
		return errors.NotFound("Booking", nil)
	}
	r.db.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *memoryBookingRepository) ListByProducer(ctx context.Context, producerID int64) ([]*entity.Booking, error) {
	return r.list(func(b *entity.Booking) bool { return b.ProducerID == producerID }), nil
}

func (r *memoryBookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]*entity.Booking, error) {
	return r.list(func(b *entity.Booking) bool { return b.ProviderID == providerID }), nil
}

func (r *memoryBookingRepository) list(match func(*entity.Booking) bool) []*entity.Booking {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	bookings := make([]*entity.Booking, 0)
	for _, booking := range r.db.bookings {
		if match(booking) {
			bookings = append(bookings, copyBooking(booking))
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})
	return bookings
}

// Reviews

type memoryReviewRepository struct {
	db *memoryDB
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastReviewID++
	review.ID = r.db.lastReviewID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	stored := *review
	r.db.reviews[review.ID] = &stored
	return nil
}

func (r *memoryReviewRepository) ListByReviewee(ctx context.Context, providerID int64) ([]*entity.Review, error) {
	return r.list(func(rv *entity.Review) bool { return rv.RevieweeID == providerID }), nil
}

func (r *memoryReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]*entity.Review, error) {
	return r.list(func(rv *entity.Review) bool { return rv.ReviewerID == reviewerID }), nil
}

func (r *memoryReviewRepository) list(match func(*entity.Review) bool) []*entity.Review {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reviews := make([]*entity.Review, 0)
	for _, review := range r.db.reviews {
		if match(review) {
			out := *review
			reviews = append(reviews, &out)
		}
	}

	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews
}

// Notifications

type memoryNotificationRepository struct {
	db *memoryDB
}

func (r *memoryNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.lastNotificationID++
	notification.ID = r.db.lastNotificationID
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	stored := *notification
	r.db.notifications[notification.ID] = &stored
	return nil
}

func (r *memoryNotificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	notification, ok := r.db.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	out := *notification
	return &out, nil
}

func (r *memoryNotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	notifications := make([]*entity.Notification, 0)
	for _, notification := range r.db.notifications {
		if notification.UserID == userID {
			out := *notification
			notifications = append(notifications, &out)
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})

	total := int64(len(notifications))
	return paginate(notifications, limit, offset), total, nil
}

func (r *memoryNotificationRepository) MarkAsRead(ctx context.Context, id int64) (*entity.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	notification, ok := r.db.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	notification.IsRead = true

	out := *notification
	return &out, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
