package repository

import (
	"context"

	"agrolink/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// ListByReviewee returns every review of a provider, oldest first.
	ListByReviewee(ctx context.Context, providerID int64) ([]*entity.Review, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]*entity.Review, error)
}
