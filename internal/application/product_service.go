package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
)

// ProductService owns the catalog: CRUD in Postgres plus a best-effort
// mirror in Elasticsearch for full-text search.
type ProductService struct {
	Products repo.ProductRepository
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
}

func NewProductService(products repo.ProductRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ProductService {
	return &ProductService{Products: products, Logger: logger, ES: es, ESIndex: esIndex}
}

// ProductInput carries the writable catalog fields.
type ProductInput struct {
	Title              string
	Description        string
	Price              float64
	PriceAfterDiscount float64
	ImageCover         string
	Quantity           int
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Title:              in.Title,
		Slug:               helpers.Slugify(in.Title),
		Description:        in.Description,
		Price:              in.Price,
		PriceAfterDiscount: in.PriceAfterDiscount,
		ImageCover:         in.ImageCover,
		Quantity:           in.Quantity,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	return s.Products.List(ctx, limit, offset)
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = in.Title
	p.Slug = helpers.Slugify(in.Title)
	p.Description = in.Description
	p.Price = in.Price
	p.PriceAfterDiscount = in.PriceAfterDiscount
	p.ImageCover = in.ImageCover
	p.Quantity = in.Quantity
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// indexProduct mirrors the catalog document into Elasticsearch. Failures
// are logged and swallowed: Postgres stays the source of truth and search
// lags at worst.
func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":               p.ID,
		"title":            p.Title,
		"slug":             p.Slug,
		"description":      p.Description,
		"price":            p.Price,
		"ratings_average":  p.RatingsAverage,
		"ratings_quantity": p.RatingsQuantity,
		"created_at":       p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":       p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *ProductService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title and description.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var body struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
