package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByCompany retrieves all users of a company
	ListByCompany(ctx context.Context, companyID string) ([]*domain.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *domain.User) error
}
