package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/domain/repository"
	"github.com/gocommerce/shop-api/pkg/helpers"
)

func newAuthService(users *MockUserRepository, sender *MockMailSender) *application.AuthService {
	return application.NewAuthService(users, helpers.NewJWTManager("test-secret", time.Hour),
		sender, nil, logrus.New(), 10*time.Minute, sender != nil)
}

func TestSignup_IssuesToken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && u.Active && u.Password != "secret123"
	})).Return(nil)

	res, err := svc.Signup(context.Background(), "Jane Doe", "jane@example.com", "", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "jane-doe", res.User.Slug)
	users.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Signup(context.Background(), "Jane Doe", "jane@example.com", "", "secret123")
	assert.ErrorIs(t, err, application.ErrDuplicateEmail)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	hash, err := helpers.HashPassword("right-password")
	assert.NoError(t, err)
	u := &entity.User{ID: uuid.NewString(), Email: "jane@example.com", Password: hash, Active: true}

	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(u, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, errWrongPass := svc.Login(context.Background(), "jane@example.com", "wrong-password")
	_, errNoUser := svc.Login(context.Background(), "nobody@example.com", "whatever")

	assert.ErrorIs(t, errWrongPass, application.ErrIncorrectCredentials)
	assert.ErrorIs(t, errNoUser, application.ErrIncorrectCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	hash, _ := helpers.HashPassword("secret123")
	u := &entity.User{ID: uuid.NewString(), Email: "jane@example.com", Password: hash, Active: false}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	_, err := svc.Login(context.Background(), u.Email, "secret123")
	assert.ErrorIs(t, err, application.ErrAccountDeactivated)
}

func TestForgotPassword_StoresHashedCodeAndSends(t *testing.T) {
	users := new(MockUserRepository)
	sender := new(MockMailSender)
	svc := newAuthService(users, sender)

	u := &entity.User{ID: uuid.NewString(), Name: "Jane", Email: "jane@example.com"}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("SetResetCode", mock.Anything, u.ID, mock.MatchedBy(func(hash string) bool {
		// sha256 hex digest, never the 6-digit code itself
		return len(hash) == 64
	}), mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, u.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := svc.ForgotPassword(context.Background(), u.Email)

	assert.NoError(t, err)
	users.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestForgotPassword_DeliveryFailureClearsCode(t *testing.T) {
	users := new(MockUserRepository)
	sender := new(MockMailSender)
	svc := newAuthService(users, sender)

	u := &entity.User{ID: uuid.NewString(), Name: "Jane", Email: "jane@example.com"}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("SetResetCode", mock.Anything, u.ID, mock.Anything, mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, u.Email, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	users.On("ClearResetCode", mock.Anything, u.ID).Return(nil)

	err := svc.ForgotPassword(context.Background(), u.Email)

	assert.ErrorIs(t, err, application.ErrDeliveryFailed)
	users.AssertCalled(t, "ClearResetCode", mock.Anything, u.ID)
}

func TestVerifyResetCode_InvalidOrExpired(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	users.On("GetByResetCode", mock.Anything, mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	err := svc.VerifyResetCode(context.Background(), "123456")
	assert.ErrorIs(t, err, application.ErrInvalidOrExpiredCode)
}

func TestVerifyResetCode_MarksVerified(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	u := &entity.User{ID: uuid.NewString()}
	codeHash := helpers.HashResetCode("123456")
	users.On("GetByResetCode", mock.Anything, codeHash, mock.Anything).Return(u, nil)
	users.On("MarkResetVerified", mock.Anything, u.ID).Return(nil)

	err := svc.VerifyResetCode(context.Background(), "123456")
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestResetPassword_RequiresVerifiedCode(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	u := &entity.User{ID: uuid.NewString(), Email: "jane@example.com", PasswordResetVerified: false}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	_, err := svc.ResetPassword(context.Background(), u.Email, "new-password")

	assert.ErrorIs(t, err, application.ErrResetNotVerified)
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_CodeIsSingleUse(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users, nil)

	u := &entity.User{ID: uuid.NewString(), Email: "jane@example.com", PasswordResetVerified: true}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("UpdatePassword", mock.Anything, u.ID, mock.Anything, mock.Anything).Return(nil)
	users.On("ClearResetCode", mock.Anything, u.ID).Return(nil)

	res, err := svc.ResetPassword(context.Background(), u.Email, "new-password")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	users.AssertCalled(t, "ClearResetCode", mock.Anything, u.ID)
}

func TestTokenPredatingPasswordChangeIsStale(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate(uuid.NewString())
	assert.NoError(t, err)

	claims, err := jwt.Parse(token)
	assert.NoError(t, err)

	changedAfter := time.Now().Add(time.Minute)
	changedBefore := time.Now().Add(-time.Minute)
	assert.True(t, claims.IssuedBefore(changedAfter))
	assert.False(t, claims.IssuedBefore(changedBefore))
}
