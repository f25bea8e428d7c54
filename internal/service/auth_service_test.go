package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key"

func userWithPassword(t *testing.T, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           "user-1",
		CompanyID:    "company-1",
		Email:        "owner@example.com",
		PasswordHash: string(hash),
		FirstName:    "Claire",
		LastName:     "Martin",
		Role:         domain.RoleAdmin,
		IsActive:     active,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	user := userWithPassword(t, "correct-horse", true)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, testSecret, time.Hour)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "owner@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
		assert.Equal(t, "user-1", resp.User.ID)
		assert.Equal(t, "company-1", resp.User.CompanyID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "owner@example.com",
			Password: "wrong",
		})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthServiceLoginInactiveUser(t *testing.T) {
	user := userWithPassword(t, "correct-horse", false)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	require.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthServiceValidateToken(t *testing.T) {
	user := userWithPassword(t, "correct-horse", true)
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testSecret, time.Hour)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(repo, "different-secret", time.Hour)
		_, err := other.ValidateToken(resp.Token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestAuthServiceRegister(t *testing.T) {
	var created *domain.User
	repo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, u *domain.User) error {
			created = u
			return nil
		},
	}
	svc := NewAuthService(repo, testSecret, time.Hour)

	resp, err := svc.Register(context.Background(), "company-1", &dto.RegisterRequest{
		Email:     "staff@example.com",
		Password:  "long-enough-pw",
		FirstName: "Paul",
		LastName:  "Petit",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "company-1", created.CompanyID)
	assert.Equal(t, domain.RoleStaff, created.Role, "role defaults to staff")
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "long-enough-pw", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("long-enough-pw")))
	assert.Equal(t, "staff@example.com", resp.Email)
}
