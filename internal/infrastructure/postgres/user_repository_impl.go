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

const userColumns = `
	id, name, slug, email, phone, profile_img, password_hash, role, active,
	password_changed_at, password_reset_code, password_reset_expires,
	password_reset_verified, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var resetCode *string
	err := row.Scan(&u.ID, &u.Name, &u.Slug, &u.Email, &u.Phone, &u.ProfileImg,
		&u.Password, &u.Role, &u.Active,
		&u.PasswordChangedAt, &resetCode, &u.PasswordResetExpires,
		&u.PasswordResetVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if resetCode != nil {
		u.PasswordResetCode = *resetCode
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, slug, email, phone, profile_img, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Slug, u.Email, u.Phone, u.ProfileImg, u.Password, u.Role, u.Active)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `SELECT`+userColumns+`
		FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, slug = $2, email = $3, phone = $4, profile_img = $5, role = $6, updated_at = $7
		WHERE id = $8
	`, u.Name, u.Slug, u.Email, u.Phone, u.ProfileImg, u.Role, u.UpdatedAt, u.ID)
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

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET active = $1, updated_at = now() WHERE id = $2
	`, active, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, password_changed_at = $2, updated_at = now()
		WHERE id = $3
	`, passwordHash, changedAt, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetCode(ctx context.Context, id, codeHash string, expires time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_reset_code = $1, password_reset_expires = $2,
		    password_reset_verified = false, updated_at = now()
		WHERE id = $3
	`, codeHash, expires, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetByResetCode(ctx context.Context, codeHash string, now time.Time) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+`
		FROM users
		WHERE password_reset_code = $1 AND password_reset_expires > $2`, codeHash, now))
}

func (r *UserRepository) MarkResetVerified(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_reset_verified = true, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetCode(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_reset_code = NULL, password_reset_expires = NULL,
		    password_reset_verified = false, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
