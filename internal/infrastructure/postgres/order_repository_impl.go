package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, shipping_details, shipping_phone, shipping_city,
		                    shipping_postal_code, total_order_price, payment_method_type,
		                    is_paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, o.UserID, o.ShippingAddress.Details, o.ShippingAddress.Phone, o.ShippingAddress.City,
		o.ShippingAddress.PostalCode, o.TotalOrderPrice, o.PaymentMethodType, o.IsPaid, o.PaidAt)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		row := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, position, quantity, color, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, o.ID, it.ProductID, i, it.Quantity, it.Color, it.Price)
		if err := row.Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, shipping_details, shipping_phone, shipping_city,
		       shipping_postal_code, total_order_price, payment_method_type,
		       is_paid, paid_at, is_delivered, delivered_at, created_at
		FROM orders WHERE id = $1
	`, id)
	if err := scanOrder(row, o); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, f repository.OrderFilter) ([]entity.Order, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, shipping_details, shipping_phone, shipping_city,
		       shipping_postal_code, total_order_price, payment_method_type,
		       is_paid, paid_at, is_delivered, delivered_at, created_at
		FROM orders`
	args := []any{}
	if f.UserID != "" {
		query += ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, f.UserID, limit, f.Offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id string, at time.Time) error {
	return r.mark(ctx, `UPDATE orders SET is_paid = true, paid_at = $1 WHERE id = $2`, id, at)
}

func (r *OrderRepository) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	return r.mark(ctx, `UPDATE orders SET is_delivered = true, delivered_at = $1 WHERE id = $2`, id, at)
}

func (r *OrderRepository) mark(ctx context.Context, query, id string, at time.Time) error {
	res, err := r.pool.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row, o *entity.Order) error {
	err := row.Scan(&o.ID, &o.UserID, &o.ShippingAddress.Details, &o.ShippingAddress.Phone,
		&o.ShippingAddress.City, &o.ShippingAddress.PostalCode, &o.TotalOrderPrice,
		&o.PaymentMethodType, &o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func (r *OrderRepository) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, quantity, color, price
		FROM order_items WHERE order_id = $1 ORDER BY position
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Color, &it.Price); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
