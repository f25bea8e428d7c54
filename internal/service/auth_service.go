package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/repository"
	"github.com/xperienceoutdoors/Resav2/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	// Login verifies credentials and issues a token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Register creates a new user within the caller's company
	Register(ctx context.Context, companyID string, req *dto.RegisterRequest) (*dto.UserResponse, error)

	// ValidateToken verifies a token and returns its claims. Used by the
	// websocket handshake, which cannot carry an Authorization header.
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login verifies credentials and issues a token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same failure as a wrong password, callers cannot probe emails
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, domain.ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !user.IsActive {
		span.SetStatus(codes.Error, "inactive user")
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      dto.ToUserResponse(user),
	}, nil
}

// Register creates a new user within the caller's company
func (s *authService) Register(ctx context.Context, companyID string, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleStaff
	}
	if !role.IsValid() {
		span.SetStatus(codes.Error, "invalid role")
		return nil, domain.ErrInvalidRole
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := dto.ToUserResponse(user)
	span.SetStatus(codes.Ok, "")
	return &resp, nil
}

// ValidateToken verifies a token and returns its claims
func (s *authService) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{}
	if v, ok := claims["user_id"].(string); ok {
		out.UserID = v
	}
	if v, ok := claims["company_id"].(string); ok {
		out.CompanyID = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = domain.Role(v)
	}
	if out.UserID == "" || out.CompanyID == "" {
		return nil, domain.ErrInvalidToken
	}
	return out, nil
}

func (s *authService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"company_id": user.CompanyID,
		"email":      user.Email,
		"role":       user.Role.String(),
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
