package usecase

import (
	"context"
	"strings"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
	producerRepo repository.ProducerRepository
	hasher       PasswordHasher
	tokens       TokenService
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
	producerRepo repository.ProducerRepository,
	hasher PasswordHasher,
	tokens TokenService,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		producerRepo: producerRepo,
		hasher:       hasher,
		tokens:       tokens,
	}
}

// RegisterInput carries the account fields and the profile fields for the
// chosen user type. Fields of the other type are ignored.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Phone    string
	UserType entity.UserType

	Location  string
	Latitude  *float64
	Longitude *float64

	FarmName  string
	FarmSize  *float64
	CropTypes []string

	ServiceType     entity.ServiceType
	Specialty       string
	Description     string
	PricePerHectare *float64
	PricePerDay     *float64
	CoverageRadius  *int
	Certifications  []string
	EquipmentOwned  *bool
}

type AuthResult struct {
	UserProfile
	Token string `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("User with this email already exists", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}
	if _, err := uc.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, errors.Conflict("User with this username already exists", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if input.UserType == entity.UserTypeProvider && strings.TrimSpace(input.Specialty) == "" {
		return nil, errors.BadRequest("Specialty is required for providers", nil)
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Name:     input.Name,
		Phone:    input.Phone,
		UserType: input.UserType,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &UserProfile{User: user}
	switch input.UserType {
	case entity.UserTypeProducer:
		producer := newProducerFromInput(user.ID, input)
		if err := uc.producerRepo.Create(ctx, producer); err != nil {
			return nil, err
		}
		profile.Producer = producer
	case entity.UserTypeProvider:
		provider := newProviderFromInput(user.ID, input)
		if err := uc.providerRepo.Create(ctx, provider); err != nil {
			return nil, err
		}
		profile.Provider = provider
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	logger.Info("Registered %s user %d (%s)", user.UserType, user.ID, user.Username)
	return &AuthResult{UserProfile: *profile, Token: token}, nil
}

func newProducerFromInput(userID int64, input RegisterInput) *entity.Producer {
	cropTypes := input.CropTypes
	if cropTypes == nil {
		cropTypes = []string{}
	}

	return &entity.Producer{
		UserID:    userID,
		FarmName:  input.FarmName,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		FarmSize:  input.FarmSize,
		CropTypes: cropTypes,
	}
}

func newProviderFromInput(userID int64, input RegisterInput) *entity.Provider {
	serviceType := input.ServiceType
	if serviceType == "" {
		serviceType = entity.ServiceTypeDrone
	}

	coverageRadius := entity.DefaultCoverageRadius
	if input.CoverageRadius != nil && *input.CoverageRadius > 0 {
		coverageRadius = *input.CoverageRadius
	}

	equipmentOwned := true
	if input.EquipmentOwned != nil {
		equipmentOwned = *input.EquipmentOwned
	}

	certifications := input.Certifications
	if certifications == nil {
		certifications = []string{}
	}

	return &entity.Provider{
		UserID:          userID,
		ServiceType:     serviceType,
		Specialty:       input.Specialty,
		Description:     input.Description,
		PricePerHectare: input.PricePerHectare,
		PricePerDay:     input.PricePerDay,
		Location:        input.Location,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		CoverageRadius:  coverageRadius,
		IsAvailable:     true,
		Certifications:  certifications,
		EquipmentOwned:  equipmentOwned,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if !uc.hasher.Compare(user.Password, password) {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	profile, err := loadProfile(ctx, user, uc.providerRepo, uc.producerRepo)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{UserProfile: *profile, Token: token}, nil
}

// Logout revokes token until it expires.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.tokens.Revoke(ctx, token)
}
