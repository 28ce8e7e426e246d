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

func newProductService(products *MockProductRepository) *application.ProductService {
	return application.NewProductService(products, logrus.New(), nil, "")
}

func TestCreateProduct_DuplicateTitleConflicts(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	products.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Slug == "usb-c-hub"
	})).Return(repository.ErrDuplicate)

	_, err := svc.Create(context.Background(), application.ProductInput{Title: "USB-C Hub", Price: 30})

	assert.ErrorIs(t, err, application.ErrProductExists)
}

func TestUpdateProduct_DuplicateTitleConflicts(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	existing := &entity.Product{ID: uuid.NewString(), Title: "Keyboard", Slug: "keyboard", Price: 60}
	products.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	// Retitling onto another product's slug trips the unique constraint.
	products.On("Update", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Update(context.Background(), existing.ID, application.ProductInput{Title: "USB-C Hub", Price: 60})

	assert.ErrorIs(t, err, application.ErrProductExists)
}
