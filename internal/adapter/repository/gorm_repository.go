package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	apperrors "agrolink/pkg/errors"
)

// NewGormStore builds the relational backend on an opened gorm connection
// (postgres in production, sqlite for single-node runs and tests).
func NewGormStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Users:         &gormUserRepository{db: db},
		Providers:     &gormProviderRepository{db: db},
		Producers:     &gormProducerRepository{db: db},
		Bookings:      &gormBookingRepository{db: db},
		Reviews:       &gormReviewRepository{db: db},
		Notifications: &gormNotificationRepository{db: db},
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func translateGormError(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(fmt.Sprintf("%s already exists", resource), err)
	default:
		return apperrors.Internal(fmt.Sprintf("Failed to access %s", strings.ToLower(resource)), err)
	}
}

// updateAll writes every column of model, zero values included, and reports
// NotFound when no row has the model's id.
func updateAll(ctx context.Context, db *gorm.DB, model interface{}, id int64, resource string) error {
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Select("*").Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}

// Users

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.checkUnique(ctx, user, 0); err != nil {
		return err
	}

	m := newUserModel(user)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "User")
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

func (r *gormUserRepository) checkUnique(ctx context.Context, user *entity.User, selfID int64) error {
	var existing []userModel
	err := r.db.WithContext(ctx).
		Where("(email = ? OR username = ?) AND id <> ?", user.Email, user.Username, selfID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return translateGormError(err, "User")
	}
	if len(existing) == 0 {
		return nil
	}
	if existing[0].Email == user.Email {
		return apperrors.Conflict("User with this email already exists", nil)
	}
	return apperrors.Conflict("User with this username already exists", nil)
}

func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, translateGormError(err, "User")
	}
	return m.toEntity(), nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *entity.User) error {
	if err := r.checkUnique(ctx, user, user.ID); err != nil {
		return err
	}
	return updateAll(ctx, r.db, newUserModel(user), user.ID, "User")
}

// Providers

type gormProviderRepository struct {
	db *gorm.DB
}

func (r *gormProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	m := newProviderModel(provider)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "Provider")
	}
	provider.ID = m.ID
	return nil
}

func (r *gormProviderRepository) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	var m providerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err, "Provider")
	}
	return m.toEntity(), nil
}

func (r *gormProviderRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Provider, error) {
	var m providerModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").First(&m).Error; err != nil {
		return nil, translateGormError(err, "Provider")
	}
	return m.toEntity(), nil
}

func (r *gormProviderRepository) List(ctx context.Context, query repository.ProviderQuery) ([]*entity.Provider, error) {
	tx := r.db.WithContext(ctx).Model(&providerModel{})
	if query.ServiceType != "" {
		tx = tx.Where("service_type = ?", string(query.ServiceType))
	}
	if query.IsAvailable != nil {
		tx = tx.Where("is_available = ?", *query.IsAvailable)
	}

	var models []providerModel
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, translateGormError(err, "Provider")
	}

	providers := make([]*entity.Provider, 0, len(models))
	for i := range models {
		providers = append(providers, models[i].toEntity())
	}
	return providers, nil
}

func (r *gormProviderRepository) Update(ctx context.Context, provider *entity.Provider) error {
	return updateAll(ctx, r.db, newProviderModel(provider), provider.ID, "Provider")
}

// Producers

type gormProducerRepository struct {
	db *gorm.DB
}

func (r *gormProducerRepository) Create(ctx context.Context, producer *entity.Producer) error {
	m := newProducerModel(producer)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "Producer")
	}
	producer.ID = m.ID
	return nil
}

func (r *gormProducerRepository) GetByID(ctx context.Context, id int64) (*entity.Producer, error) {
	var m producerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err, "Producer")
	}
	return m.toEntity(), nil
}

func (r *gormProducerRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Producer, error) {
	var m producerModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").First(&m).Error; err != nil {
		return nil, translateGormError(err, "Producer")
	}
	return m.toEntity(), nil
}

func (r *gormProducerRepository) Update(ctx context.Context, producer *entity.Producer) error {
	return updateAll(ctx, r.db, newProducerModel(producer), producer.ID, "Producer")
}

// Bookings

type gormBookingRepository struct {
	db *gorm.DB
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	m := newBookingModel(booking)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "Booking")
	}
	booking.ID = m.ID
	booking.CreatedAt = m.CreatedAt
	return nil
}

func (r *gormBookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err, "Booking")
	}
	return m.toEntity(), nil
}

func (r *gormBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return updateAll(ctx, r.db, newBookingModel(booking), booking.ID, "Booking")
}

func (r *gormBookingRepository) ListByProducer(ctx context.Context, producerID int64) ([]*entity.Booking, error) {
	return r.list(ctx, "producer_id = ?", producerID)
}

func (r *gormBookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]*entity.Booking, error) {
	return r.list(ctx, "provider_id = ?", providerID)
}

func (r *gormBookingRepository) list(ctx context.Context, query string, arg interface{}) ([]*entity.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, translateGormError(err, "Booking")
	}

	bookings := make([]*entity.Booking, 0, len(models))
	for i := range models {
		bookings = append(bookings, models[i].toEntity())
	}
	return bookings, nil
}

// Reviews

type gormReviewRepository struct {
	db *gorm.DB
}

func (r *gormReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	m := newReviewModel(review)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "Review")
	}
	review.ID = m.ID
	review.CreatedAt = m.CreatedAt
	return nil
}

func (r *gormReviewRepository) ListByReviewee(ctx context.Context, providerID int64) ([]*entity.Review, error) {
	return r.list(ctx, "reviewee_id = ?", providerID)
}

func (r *gormReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]*entity.Review, error) {
	return r.list(ctx, "reviewer_id = ?", reviewerID)
}

func (r *gormReviewRepository) list(ctx context.Context, query string, arg interface{}) ([]*entity.Review, error) {
	var models []reviewModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id ASC").Find(&models).Error; err != nil {
		return nil, translateGormError(err, "Review")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, models[i].toEntity())
	}
	return reviews, nil
}

// Notifications

type gormNotificationRepository struct {
	db *gorm.DB
}

func (r *gormNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	m := newNotificationModel(notification)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateGormError(err, "Notification")
	}
	notification.ID = m.ID
	notification.CreatedAt = m.CreatedAt
	return nil
}

func (r *gormNotificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var m notificationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err, "Notification")
	}
	return m.toEntity(), nil
}

func (r *gormNotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, int64, error) {
	base := r.db.WithContext(ctx).Model(&notificationModel{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translateGormError(err, "Notification")
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []notificationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, translateGormError(err, "Notification")
	}

	notifications := make([]*entity.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, models[i].toEntity())
	}
	return notifications, total, nil
}

func (r *gormNotificationRepository) MarkAsRead(ctx context.Context, id int64) (*entity.Notification, error) {
	result := r.db.WithContext(ctx).Model(&notificationModel{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return nil, translateGormError(result.Error, "Notification")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("Notification", nil)
	}
	return r.GetByID(ctx, id)
}
