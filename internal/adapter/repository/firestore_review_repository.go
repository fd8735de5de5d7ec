package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	return createDoc(ctx, r.client, reviewsCollection, nil, func(id int64) interface{} {
		review.ID = id
		return review
	})
}

func (r *firestoreReviewRepository) ListByReviewee(ctx context.Context, providerID int64) ([]*entity.Review, error) {
	return r.listWhere(ctx, "revieweeId", providerID)
}

func (r *firestoreReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]*entity.Review, error) {
	return r.listWhere(ctx, "reviewerId", reviewerID)
}

func (r *firestoreReviewRepository) listWhere(ctx context.Context, field string, id int64) ([]*entity.Review, error) {
	query := r.client.Collection(reviewsCollection).Where(field, "==", id)
	reviews, err := queryAll[entity.Review](ctx, query, "review")
	if err != nil {
		return nil, err
	}

	sortByID(reviews, func(rv *entity.Review) int64 { return rv.ID })
	return reviews, nil
}
