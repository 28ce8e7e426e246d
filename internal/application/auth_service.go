package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gocommerce/shop-api/internal/domain/entity"
	repo "github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
	"github.com/gocommerce/shop-api/pkg/mailer"
	"github.com/gocommerce/shop-api/pkg/mailer/templates"
)

// MailSender delivers one email synchronously. Satisfied by mailer.Mailgun.
type MailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// AuthService handles signup, login and the password-reset lifecycle.
type AuthService struct {
	Users        repo.UserRepository
	JWT          *helpers.JWTManager
	Mailer       MailSender
	Publisher    *helpers.RabbitPublisher
	Logger       *logrus.Logger
	ResetCodeTTL time.Duration
	MailEnabled  bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mg MailSender, pub *helpers.RabbitPublisher, logger *logrus.Logger, resetTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:        users,
		JWT:          jwt,
		Mailer:       mg,
		Publisher:    pub,
		Logger:       logger,
		ResetCodeTTL: resetTTL,
		MailEnabled:  mailEnabled,
	}
}

// AuthResult bundles the authenticated user with a fresh token.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

// Signup registers a new account with the default role and issues a token.
// The welcome email goes through the queue so a slow broker never blocks
// the response.
func (s *AuthService) Signup(ctx context.Context, name, email, phone, password string) (*AuthResult, error) {
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
		Role:     entity.RoleUser,
		Active:   true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, u)

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// Login verifies credentials and issues a token. Lookup failures and bad
// passwords collapse into one error so the response does not leak which
// emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrIncorrectCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrIncorrectCredentials
	}
	if !u.Active {
		return nil, ErrAccountDeactivated
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// ForgotPassword stores a hashed reset code and emails the plaintext code.
// Sending happens synchronously: if delivery fails the code is cleared so a
// stale undeliverable code can never be redeemed later.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := helpers.GenResetCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.ResetCodeTTL)
	if err := s.Users.SetResetCode(ctx, u.ID, helpers.HashResetCode(code), expires); err != nil {
		return err
	}

	if !s.MailEnabled || s.Mailer == nil {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("mail sending disabled, reset code not delivered")
		}
		return nil
	}

	subject, text, html, err := templates.Render(mailer.TemplateResetCode, map[string]any{
		"Name":      u.Name,
		"Code":      code,
		"ExpiresIn": fmt.Sprintf("%d minutes", int(s.ResetCodeTTL.Minutes())),
	})
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, u.Email, subject, text, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset code email failed")
		}
		if clearErr := s.Users.ClearResetCode(ctx, u.ID); clearErr != nil && s.Logger != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Error("clear reset code failed")
		}
		return ErrDeliveryFailed
	}
	return nil
}

// VerifyResetCode checks a submitted code against the stored digest and
// marks it verified. The code stays single-use: ResetPassword clears it.
func (s *AuthService) VerifyResetCode(ctx context.Context, code string) error {
	u, err := s.Users.GetByResetCode(ctx, helpers.HashResetCode(code), time.Now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}
	return s.Users.MarkResetVerified(ctx, u.ID)
}

// ResetPassword replaces the password after a verified reset code and
// issues a fresh token. Stamping password_changed_at retires every token
// issued before this call.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !u.PasswordResetVerified {
		return nil, ErrResetNotVerified
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.Users.UpdatePassword(ctx, u.ID, hash, now); err != nil {
		return nil, err
	}
	if err := s.Users.ClearResetCode(ctx, u.ID); err != nil {
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

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("enqueue welcome email failed")
	}
}
