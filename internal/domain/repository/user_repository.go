package repository

import (
	"context"
	"time"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error

	// UpdatePassword replaces the stored hash and stamps password_changed_at,
	// which retires every token issued before the change.
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error

	// Password-reset lifecycle. Only the sha256 digest of the code is stored.
	SetResetCode(ctx context.Context, id, codeHash string, expires time.Time) error
	GetByResetCode(ctx context.Context, codeHash string, now time.Time) (*entity.User, error)
	MarkResetVerified(ctx context.Context, id string) error
	ClearResetCode(ctx context.Context, id string) error
}
