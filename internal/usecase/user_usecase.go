package usecase

import (
	"context"
	"strings"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	producerRepo repository.ProducerRepository
	hasher       PasswordHasher
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
	producerRepo repository.ProducerRepository,
	hasher PasswordHasher,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		producerRepo: producerRepo,
		hasher:       hasher,
	}
}

// UserProfile is a user with the profile selected by its user type.
type UserProfile struct {
	User     *entity.User     `json:"user"`
	Provider *entity.Provider `json:"provider,omitempty"`
	Producer *entity.Producer `json:"producer,omitempty"`
}

type UpdateUserInput struct {
	Username *string
	Name     *string
	Phone    *string
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return loadProfile(ctx, user, uc.providerRepo, uc.producerRepo)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID int64, input UpdateUserInput) (*UserProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, errors.BadRequest("Username cannot be empty", nil)
		}
		user.Username = username
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.BadRequest("Name cannot be empty", nil)
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return loadProfile(ctx, user, uc.providerRepo, uc.producerRepo)
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !uc.hasher.Compare(user.Password, currentPassword) {
		return errors.Unauthorized("Current password is incorrect", nil)
	}

	hashed, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	user.Password = hashed

	return uc.userRepo.Update(ctx, user)
}

// loadProfile attaches the provider or producer profile of user. A user
// registered without a profile is returned bare.
func loadProfile(
	ctx context.Context,
	user *entity.User,
	providerRepo repository.ProviderRepository,
	producerRepo repository.ProducerRepository,
) (*UserProfile, error) {
	profile := &UserProfile{User: user}

	switch user.UserType {
	case entity.UserTypeProvider:
		provider, err := providerRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		profile.Provider = provider
	case entity.UserTypeProducer:
		producer, err := producerRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		profile.Producer = producer
	}

	return profile, nil
}
