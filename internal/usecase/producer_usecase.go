package usecase

import (
	"context"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type ProducerUseCase struct {
	producerRepo repository.ProducerRepository
	userRepo     repository.UserRepository
}

func NewProducerUseCase(producerRepo repository.ProducerRepository, userRepo repository.UserRepository) *ProducerUseCase {
	return &ProducerUseCase{
		producerRepo: producerRepo,
		userRepo:     userRepo,
	}
}

func (uc *ProducerUseCase) GetProducer(ctx context.Context, id int64) (*entity.ProducerWithUser, error) {
	producer, err := uc.producerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, producer.UserID)
	if err != nil {
		return nil, err
	}

	return &entity.ProducerWithUser{Producer: producer, User: user}, nil
}

type UpdateProducerInput struct {
	FarmName  *string
	Location  *string
	Latitude  *float64
	Longitude *float64
	FarmSize  *float64
	CropTypes []string
}

func (uc *ProducerUseCase) UpdateProducer(ctx context.Context, userID, producerID int64, input UpdateProducerInput) (*entity.Producer, error) {
	producer, err := uc.producerRepo.GetByID(ctx, producerID)
	if err != nil {
		return nil, err
	}

	if producer.UserID != userID {
		return nil, errors.Forbidden("You can only update your own producer profile", nil)
	}

	if input.FarmName != nil {
		producer.FarmName = *input.FarmName
	}
	if input.Location != nil {
		producer.Location = *input.Location
	}
	if input.Latitude != nil {
		producer.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		producer.Longitude = input.Longitude
	}
	if input.FarmSize != nil {
		producer.FarmSize = input.FarmSize
	}
	if input.CropTypes != nil {
		producer.CropTypes = input.CropTypes
	}

	if err := uc.producerRepo.Update(ctx, producer); err != nil {
		return nil, err
	}

	return producer, nil
}
