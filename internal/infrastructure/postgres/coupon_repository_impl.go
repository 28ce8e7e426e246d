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

type CouponRepository struct {
	pool *pgxpool.Pool
}

func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

func (r *CouponRepository) Create(ctx context.Context, c *entity.Coupon) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO coupons (name, expire, discount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Expire, c.Discount)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CouponRepository) GetByName(ctx context.Context, name string) (*entity.Coupon, error) {
	c := &entity.Coupon{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, expire, discount, created_at, updated_at
		FROM coupons WHERE name = $1
	`, name)
	if err := row.Scan(&c.ID, &c.Name, &c.Expire, &c.Discount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]entity.Coupon, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, expire, discount, created_at, updated_at
		FROM coupons ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []entity.Coupon
	for rows.Next() {
		var c entity.Coupon
		if err := rows.Scan(&c.ID, &c.Name, &c.Expire, &c.Discount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CouponRepository = (*CouponRepository)(nil)
