package usecase

import (
	"context"
	"strings"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type ProviderUseCase struct {
	providerRepo repository.ProviderRepository
	userRepo     repository.UserRepository
	reviewRepo   repository.ReviewRepository
}

func NewProviderUseCase(
	providerRepo repository.ProviderRepository,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
) *ProviderUseCase {
	return &ProviderUseCase{
		providerRepo: providerRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
	}
}

// ProviderDetails is a provider with its owning user and every review it received.
type ProviderDetails struct {
	*entity.ProviderWithUser
	Reviews []*entity.Review `json:"reviews"`
}

func (uc *ProviderUseCase) GetProvider(ctx context.Context, id int64) (*ProviderDetails, error) {
	provider, err := uc.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, provider.UserID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByReviewee(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProviderDetails{
		ProviderWithUser: &entity.ProviderWithUser{Provider: provider, User: user},
		Reviews:          reviews,
	}, nil
}

// UpdateProviderInput is a partial update; nil fields are left unchanged.
// Rating and review count are derived and cannot be set here.
type UpdateProviderInput struct {
	ServiceType     *entity.ServiceType
	Specialty       *string
	Description     *string
	PricePerHectare *float64
	PricePerDay     *float64
	Location        *string
	Latitude        *float64
	Longitude       *float64
	CoverageRadius  *int
	IsAvailable     *bool
	Certifications  []string
	EquipmentOwned  *bool
}

func (uc *ProviderUseCase) UpdateProvider(ctx context.Context, userID, providerID int64, input UpdateProviderInput) (*entity.Provider, error) {
	provider, err := uc.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if provider.UserID != userID {
		return nil, errors.Forbidden("You can only update your own provider profile", nil)
	}

	if input.ServiceType != nil {
		if *input.ServiceType == "" {
			return nil, errors.BadRequest("Service type cannot be empty", nil)
		}
		provider.ServiceType = *input.ServiceType
	}
	if input.Specialty != nil {
		if strings.TrimSpace(*input.Specialty) == "" {
			return nil, errors.BadRequest("Specialty cannot be empty", nil)
		}
		provider.Specialty = *input.Specialty
	}
	if input.Description != nil {
		provider.Description = *input.Description
	}
	if input.PricePerHectare != nil {
		provider.PricePerHectare = input.PricePerHectare
	}
	if input.PricePerDay != nil {
		provider.PricePerDay = input.PricePerDay
	}
	if input.Location != nil {
		provider.Location = *input.Location
	}
	if input.Latitude != nil {
		provider.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		provider.Longitude = input.Longitude
	}
	if input.CoverageRadius != nil {
		provider.CoverageRadius = *input.CoverageRadius
	}
	if input.IsAvailable != nil {
		provider.IsAvailable = *input.IsAvailable
	}
	if input.Certifications != nil {
		provider.Certifications = input.Certifications
	}
	if input.EquipmentOwned != nil {
		provider.EquipmentOwned = *input.EquipmentOwned
	}

	if err := uc.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}

	return provider, nil
}
