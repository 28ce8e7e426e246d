package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
)

// UserService covers self-service profile operations and admin account
// management.
type UserService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, JWT: jwt, Logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.Users.List(ctx, limit, offset)
}

// ProfileUpdate carries the self-editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	ProfileImg *string
}

// UpdateProfile edits the caller's own account. Role and active status are
// untouchable here; admins change those through AdminUpdate.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
		u.Slug = helpers.Slugify(*upd.Name)
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.ProfileImg != nil {
		u.ProfileImg = *upd.ProfileImg
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password, stores the new hash and
// issues a fresh token, since stamping password_changed_at retires the one
// the caller used on this request.
func (s *UserService) ChangePassword(ctx context.Context, id, current, newPassword string) (*AuthResult, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return nil, ErrPasswordMismatch
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.Users.UpdatePassword(ctx, id, hash, now); err != nil {
		return nil, err
	}
	u.Password = hash
	u.PasswordChangedAt = &now

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// Deactivate soft-deletes the caller's account. The row stays so the order
// ledger keeps its references; the auth guard rejects inactive users.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if err := s.Users.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) Activate(ctx context.Context, id string) error {
	if err := s.Users.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// AdminCreate registers an account with an explicit role.
func (s *UserService) AdminCreate(ctx context.Context, name, email, phone, password string, role entity.Role) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     name,
		Slug:     helpers.Slugify(name),
		Email:    email,
		Phone:    phone,
		Password: hash,
		Role:     role,
		Active:   true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// AdminUpdate carries the admin-editable fields. Nil means unchanged.
type AdminUpdate struct {
	Name  *string
	Email *string
	Phone *string
	Role  *entity.Role
}

func (s *UserService) AdminEdit(ctx context.Context, id string, upd AdminUpdate) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
		u.Slug = helpers.Slugify(*upd.Name)
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// AdminSetPassword replaces a user's password without knowing the current
// one. Stamping password_changed_at retires every token the user holds.
func (s *UserService) AdminSetPassword(ctx context.Context, id, newPassword string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, id, hash, time.Now())
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
