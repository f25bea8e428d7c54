package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *domain.Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id string) (*domain.Company, error)

	// Update updates an existing company
	Update(ctx context.Context, company *domain.Company) error
}
