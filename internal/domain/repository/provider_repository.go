package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

// ProviderQuery narrows a provider listing by exact-match attributes.
// Zero values mean "no constraint".
type ProviderQuery struct {
	ServiceType entity.ServiceType
	IsAvailable *bool
}

type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id int64) (*entity.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Provider, error)
	// List returns providers ordered by id ascending.
	List(ctx context.Context, query ProviderQuery) ([]*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
}
