package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

type ProducerRepository interface {
	Create(ctx context.Context, producer *entity.Producer) error
	GetByID(ctx context.Context, id int64) (*entity.Producer, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Producer, error)
	Update(ctx context.Context, producer *entity.Producer) error
}
