package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	// Create creates a new activity
	Create(ctx context.Context, activity *domain.Activity) error

	// GetByID retrieves an activity scoped to a company
	GetByID(ctx context.Context, companyID, id string) (*domain.Activity, error)

	// ListByCompany retrieves all activities of a company
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Activity, error)

	// Update updates an existing activity
	Update(ctx context.Context, activity *domain.Activity) error

	// Delete removes an activity scoped to a company
	Delete(ctx context.Context, companyID, id string) error
}
