package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
)

// ReviewService manages product reviews and keeps the product's rating
// aggregates in step with them.
type ReviewService struct {
	Reviews  repo.ReviewRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewReviewService(reviews repo.ReviewRepository, products repo.ProductRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Products: products, Logger: logger}
}

// Create records a review and recomputes the product's aggregates. One
// review per user per product; the unique constraint is the arbiter under
// concurrency.
func (s *ReviewService) Create(ctx context.Context, userID, productID, title string, ratings int) (*entity.Review, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	rv := &entity.Review{
		UserID:    userID,
		ProductID: productID,
		Title:     title,
		Ratings:   ratings,
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	s.recompute(ctx, productID)
	return rv, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	return s.Reviews.ListByProduct(ctx, productID)
}

// Delete removes a review. Customers may only delete their own; staff may
// delete any.
func (s *ReviewService) Delete(ctx context.Context, requester *entity.User, id string) error {
	rv, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if requester.Role == entity.RoleUser && rv.UserID != requester.ID {
		return ErrForbidden
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	s.recompute(ctx, rv.ProductID)
	return nil
}

// recompute refreshes ratings_average and ratings_quantity from the review
// table. With zero reviews both aggregates reset to zero.
func (s *ReviewService) recompute(ctx context.Context, productID string) {
	avg, count, err := s.Reviews.AggregateForProduct(ctx, productID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", productID).Error("aggregate reviews failed")
		}
		return
	}
	if err := s.Products.SetRatingAggregates(ctx, productID, avg, count); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", productID).Error("store rating aggregates failed")
	}
}
