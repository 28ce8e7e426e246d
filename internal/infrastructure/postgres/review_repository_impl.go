package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, title, ratings)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rv.UserID, rv.ProductID, rv.Title, rv.Ratings)
	if err := row.Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_id, title, ratings, created_at, updated_at
		FROM reviews WHERE id = $1
	`, id)
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Title, &rv.Ratings,
		&rv.CreatedAt, &rv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, product_id, title, ratings, created_at, updated_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Title, &rv.Ratings,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AggregateForProduct returns (0, 0) when the product has no reviews.
func (r *ReviewRepository) AggregateForProduct(ctx context.Context, productID string) (float64, int, error) {
	var avg float64
	var count int
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(ratings), 0), COUNT(*)
		FROM reviews WHERE product_id = $1
	`, productID)
	if err := row.Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
