package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

func newReviewService(reviews *MockReviewRepository, products *MockProductRepository) *application.ReviewService {
	return application.NewReviewService(reviews, products, logrus.New())
}

func TestCreateReview_RecomputesAggregates(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	svc := newReviewService(reviews, products)

	productID := uuid.NewString()
	products.On("GetByID", mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("AggregateForProduct", mock.Anything, productID).Return(4.5, 2, nil)
	products.On("SetRatingAggregates", mock.Anything, productID, 4.5, 2).Return(nil)

	rv, err := svc.Create(context.Background(), uuid.NewString(), productID, "Great", 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, rv.Ratings)
	products.AssertCalled(t, "SetRatingAggregates", mock.Anything, productID, 4.5, 2)
}

func TestCreateReview_OnePerUserPerProduct(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	svc := newReviewService(reviews, products)

	productID := uuid.NewString()
	products.On("GetByID", mock.Anything, productID).Return(&entity.Product{ID: productID}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Create(context.Background(), uuid.NewString(), productID, "Again", 4)

	assert.ErrorIs(t, err, application.ErrAlreadyReviewed)
	reviews.AssertNotCalled(t, "AggregateForProduct", mock.Anything, mock.Anything)
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	svc := newReviewService(reviews, products)

	products.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), "Nope", 3)
	assert.ErrorIs(t, err, application.ErrProductNotFound)
}

func TestDeleteReview_CustomerLimitedToOwn(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	svc := newReviewService(reviews, products)

	rv := &entity.Review{ID: uuid.NewString(), UserID: uuid.NewString(), ProductID: uuid.NewString()}
	reviews.On("GetByID", mock.Anything, rv.ID).Return(rv, nil)

	customer := &entity.User{ID: uuid.NewString(), Role: entity.RoleUser}
	err := svc.Delete(context.Background(), customer, rv.ID)

	assert.ErrorIs(t, err, application.ErrForbidden)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteReview_AdminDeletesAnyAndAggregatesReset(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	svc := newReviewService(reviews, products)

	rv := &entity.Review{ID: uuid.NewString(), UserID: uuid.NewString(), ProductID: uuid.NewString()}
	reviews.On("GetByID", mock.Anything, rv.ID).Return(rv, nil)
	reviews.On("Delete", mock.Anything, rv.ID).Return(nil)
	// Last review gone: both aggregates reset to zero.
	reviews.On("AggregateForProduct", mock.Anything, rv.ProductID).Return(0.0, 0, nil)
	products.On("SetRatingAggregates", mock.Anything, rv.ProductID, 0.0, 0).Return(nil)

	admin := &entity.User{ID: uuid.NewString(), Role: entity.RoleAdmin}
	err := svc.Delete(context.Background(), admin, rv.ID)

	assert.NoError(t, err)
	products.AssertCalled(t, "SetRatingAggregates", mock.Anything, rv.ProductID, 0.0, 0)
}
