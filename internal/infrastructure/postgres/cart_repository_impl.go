package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Create(ctx context.Context, c *entity.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO carts (user_id, total_cart_price, total_price_after_discount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.TotalCartPrice, c.TotalPriceAfterDiscount)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	if err := insertCartItems(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CartRepository) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *CartRepository) get(ctx context.Context, where string, arg any) (*entity.Cart, error) {
	c := &entity.Cart{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, total_cart_price, total_price_after_discount, created_at, updated_at
		FROM carts `+where, arg)
	if err := row.Scan(&c.ID, &c.UserID, &c.TotalCartPrice, &c.TotalPriceAfterDiscount,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, quantity, color, price
		FROM cart_items WHERE cart_id = $1 ORDER BY created_at
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Color, &it.Price); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// Save rewrites the item list and totals in one transaction.
func (r *CartRepository) Save(ctx context.Context, c *entity.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE carts
		SET total_cart_price = $1, total_price_after_discount = $2, updated_at = now()
		WHERE id = $3
	`, c.TotalCartPrice, c.TotalPriceAfterDiscount, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return err
	}
	if err := insertCartItems(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes the cart (items cascade). The boolean result is the
// compare-and-delete guard consumed by checkout.
func (r *CartRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func insertCartItems(ctx context.Context, tx pgx.Tx, c *entity.Cart) error {
	for i := range c.Items {
		it := &c.Items[i]
		row := tx.QueryRow(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, color, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, c.ID, it.ProductID, it.Quantity, it.Color, it.Price)
		if err := row.Scan(&it.ID); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
