package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect/internal/app/models"
	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
	"github.com/educonnect/educonnect/internal/pkg/auth"
)

type UserStoreMock struct{ mock.Mock }

func (m *UserStoreMock) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserStoreMock) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UserStoreMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UserStoreMock) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *UserStoreMock) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "educonnect.test",
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and returns tokens", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			// the stored password must be a bcrypt hash, not the raw input
			return u.Email == "jdoe@example.com" &&
				u.Role == models.RoleStudent &&
				u.Password != "password123" &&
				auth.CheckPassword(u.Password, "password123")
		})).Return(nil)

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Username:  "jdoe",
			Email:     "jdoe@example.com",
			Password:  "password123",
			FirstName: "John",
			LastName:  "Doe",
			Role:      models.RoleStudent,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, "Bearer", resp.Token.TokenType)
		users.AssertExpectations(t)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username:  "jdoe",
			Email:     "jdoe@example.com",
			Password:  "password123",
			FirstName: "John",
			LastName:  "Doe",
			Role:      "admin",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("propagates a duplicate email", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		users.On("Create", ctx, mock.Anything).Return(apperrors.ErrEmailAlreadyExists)

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username:  "jdoe",
			Email:     "jdoe@example.com",
			Password:  "password123",
			FirstName: "John",
			LastName:  "Doe",
			Role:      models.RoleVolunteer,
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	account := &models.User{
		ID:       1,
		Email:    "jdoe@example.com",
		Password: hashed,
		Role:     models.RoleStudent,
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		users.On("GetByEmail", ctx, "jdoe@example.com").Return(account, nil)

		resp, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "jdoe@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.User.ID)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		users.On("GetByEmail", ctx, "jdoe@example.com").Return(account, nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "jdoe@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := new(UserStoreMock)
		svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, &dto.LoginRequest{
			Email:    "ghost@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := new(UserStoreMock)
	jwtService := newTestJWTService()
	svc := NewAuthService(users, jwtService, zerolog.Nop())

	users.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 42
	})

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username:  "vol",
		Email:     "vol@example.com",
		Password:  "password123",
		FirstName: "Vol",
		LastName:  "Unteer",
		Role:      models.RoleVolunteer,
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(models.RoleVolunteer), claims.Role)
}
