package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

type UserRepository interface {
	// Create assigns the id and createdAt. A taken username or email is a Conflict.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
