package repository

import (
	"context"

	"github.com/xperienceoutdoors/Resav2/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Category, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, companyID, id string) error
}

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Resource, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, companyID, id string) error
}

// PackageRepository defines the interface for package data access
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Package, error)
	ListByActivity(ctx context.Context, companyID, activityID string) ([]*domain.Package, error)
	Update(ctx context.Context, pkg *domain.Package) error
	Delete(ctx context.Context, companyID, id string) error
}
