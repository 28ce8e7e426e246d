package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

const productColumns = `
	id, title, slug, description, price, price_after_discount, image_cover,
	quantity, sold, ratings_average, ratings_quantity, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Price,
		&p.PriceAfterDiscount, &p.ImageCover, &p.Quantity, &p.Sold,
		&p.RatingsAverage, &p.RatingsQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, slug, description, price, price_after_discount, image_cover, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, sold, ratings_average, ratings_quantity, created_at, updated_at
	`, p.Title, p.Slug, p.Description, p.Price, p.PriceAfterDiscount, p.ImageCover, p.Quantity)
	if err := row.Scan(&p.ID, &p.Sold, &p.RatingsAverage, &p.RatingsQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT`+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT`+productColumns+`
		FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, slug = $2, description = $3, price = $4,
		    price_after_discount = $5, image_cover = $6, quantity = $7, updated_at = $8
		WHERE id = $9
	`, p.Title, p.Slug, p.Description, p.Price, p.PriceAfterDiscount, p.ImageCover, p.Quantity, p.UpdatedAt, p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ApplySale moves stock into sold for every line item in one statement, so
// the two counters can never drift apart for an item. With the floor policy
// on, rows that would go negative are excluded from the update; a short row
// count rolls the whole batch back.
func (r *ProductRepository) ApplySale(ctx context.Context, items []entity.SaleItem, allowNegative bool) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	qtys := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
		qtys[i] = it.Quantity
	}

	query := `
		UPDATE products AS p
		SET quantity = p.quantity - s.qty, sold = p.sold + s.qty, updated_at = now()
		FROM (SELECT unnest($1::uuid[]) AS id, unnest($2::int[]) AS qty) AS s
		WHERE p.id = s.id`
	if !allowNegative {
		query += ` AND p.quantity >= s.qty`
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, query, ids, qtys)
	if err != nil {
		return err
	}
	if int(res.RowsAffected()) != len(items) {
		if !allowNegative {
			return repository.ErrInsufficientStock
		}
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) SetRatingAggregates(ctx context.Context, id string, average float64, count int) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET ratings_average = $1, ratings_quantity = $2, updated_at = now()
		WHERE id = $3
	`, average, count, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
