package usecase

import (
	"context"
	"fmt"
	"math/big"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo    repository.ReviewRepository
	bookingRepo   repository.BookingRepository
	providerRepo  repository.ProviderRepository
	notifications *NotificationUseCase
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
	notifications *NotificationUseCase,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:    reviewRepo,
		bookingRepo:   bookingRepo,
		providerRepo:  providerRepo,
		notifications: notifications,
	}
}

type CreateReviewInput struct {
	BookingID  int64
	RevieweeID int64
	Rating     int
	Comment    string
}

// CreateReview stores a review and recomputes the reviewee's rating from
// every review it has.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID int64, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if _, err := uc.bookingRepo.GetByID(ctx, input.BookingID); err != nil {
		return nil, err
	}

	provider, err := uc.providerRepo.GetByID(ctx, input.RevieweeID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		BookingID:  input.BookingID,
		ReviewerID: reviewerID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.RecomputeRating(ctx, input.RevieweeID); err != nil {
		return nil, err
	}

	if _, err := uc.notifications.Notify(ctx, CreateNotificationInput{
		UserID:  provider.UserID,
		Title:   "Nova Avaliação",
		Message: fmt.Sprintf("Você recebeu uma avaliação de %d estrela(s)", input.Rating),
		Type:    entity.NotificationTypeSystem,
	}); err != nil {
		logger.Error("Failed to notify provider %d about review %d: %v", provider.ID, review.ID, err)
	}

	return review, nil
}

// RecomputeRating sets rating and totalReviews of a provider from all of its
// reviews. The read and the write are not atomic.
func (uc *ReviewUseCase) RecomputeRating(ctx context.Context, providerID int64) error {
	reviews, err := uc.reviewRepo.ListByReviewee(ctx, providerID)
	if err != nil {
		return err
	}

	provider, err := uc.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return err
	}

	ratings := make([]int, len(reviews))
	for i, review := range reviews {
		ratings[i] = review.Rating
	}

	provider.Rating = roundedMean(ratings)
	provider.TotalReviews = len(reviews)

	return uc.providerRepo.Update(ctx, provider)
}

func (uc *ReviewUseCase) ListByProvider(ctx context.Context, providerID int64) ([]*entity.Review, error) {
	if _, err := uc.providerRepo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListByReviewee(ctx, providerID)
}

// roundedMean is the mean of ratings rounded to two decimals. Rounding looks
// at the exact binary value of the float64 mean, so 801/200 (stored just below
// 4.005) gives 4.00 while 33/8 (exactly 4.125) gives 4.13.
func roundedMean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	var sum int64
	for _, r := range ratings {
		sum += int64(r)
	}

	return roundHundredths(float64(sum) / float64(len(ratings)))
}

// roundHundredths rounds x to the nearest hundredth, ties away from zero.
func roundHundredths(x float64) float64 {
	scaled := new(big.Float).SetPrec(128).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(100))

	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Abs(frac).Cmp(big.NewFloat(0.5)) >= 0 {
		if x < 0 {
			whole.Sub(whole, big.NewInt(1))
		} else {
			whole.Add(whole, big.NewInt(1))
		}
	}

	return float64(whole.Int64()) / 100
}
